package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink delivers a finished PDF and reports where it went
type Sink interface {
	Deliver(ctx context.Context, name string, data []byte) (string, error)
}

// DirSink writes exports into a local directory
type DirSink struct {
	Dir string
}

// Deliver writes data to Dir/name, creating Dir when needed
func (s DirSink) Deliver(_ context.Context, name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

// S3API is the subset of the S3 client used by S3Sink
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures an S3-compatible bucket for shared exports
type S3Config struct {
	Bucket    string
	Region    string
	Prefix    string
	Endpoint  string // optional, for S3-compatible stores such as R2 or MinIO
	AccessKey string
	SecretKey string
}

// S3Sink uploads exports to a bucket
type S3Sink struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Sink wraps an existing client
func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromConfig builds the S3 client from the default AWS config chain.
// Static credentials and a custom endpoint override the chain when set.
func NewS3SinkFromConfig(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("export bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3Sink(client, cfg.Bucket, cfg.Prefix), nil
}

// Deliver uploads data under prefix/name and returns its s3:// URI
func (s *S3Sink) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	key := name
	if s.prefix != "" {
		key = path.Join(s.prefix, name)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// MultiSink delivers to every sink in order and reports the last location
type MultiSink []Sink

// Deliver stops at the first failing sink
func (m MultiSink) Deliver(ctx context.Context, name string, data []byte) (string, error) {
	location := ""
	for _, sink := range m {
		loc, err := sink.Deliver(ctx, name, data)
		if err != nil {
			return location, err
		}
		location = loc
	}
	return location, nil
}
