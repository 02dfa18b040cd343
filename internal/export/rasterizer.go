package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Rasterizer turns an export tree into a PNG snapshot
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, viewportWidth int) ([]byte, error)
}

// DefaultScaleFactor is the device scale factor of the snapshot
const DefaultScaleFactor = 2.0

// ChromeRasterizer renders the export tree off-screen in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRasterizer struct {
	ExecPath    string
	ScaleFactor float64
	Timeout     time.Duration
	Verbose     bool
}

// NewChromeRasterizer creates a rasterizer with a scale factor of 2 and a 30s timeout
func NewChromeRasterizer(verbose bool) *ChromeRasterizer {
	return &ChromeRasterizer{
		ScaleFactor: DefaultScaleFactor,
		Timeout:     30 * time.Second,
		Verbose:     verbose,
	}
}

// Rasterize writes html to a temporary directory, loads it at the given
// viewport width and captures the full page. The temporary directory and the
// browser are always released.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string, viewportWidth int) ([]byte, error) {
	dir, err := os.MkdirTemp("", "resume-export-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("[EXPORT] Warning: failed to remove %s: %v", dir, err)
		}
	}()

	page := filepath.Join(dir, "index.html")
	if err := os.WriteFile(page, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write export tree: %w", err)
	}

	if r.Verbose {
		log.Printf("[EXPORT] Rasterizing %d bytes at %dpx", len(html), viewportWidth)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	scale := r.ScaleFactor
	if scale <= 0 {
		scale = DefaultScaleFactor
	}

	var snapshot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(viewportWidth), 600, chromedp.EmulateScale(scale)),
		chromedp.Navigate("file://"+page),
		chromedp.WaitReady("#resume", chromedp.ByQuery),
		// quality 100 selects PNG
		chromedp.FullScreenshot(&snapshot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rasterization failed: %w", err)
	}

	if r.Verbose {
		log.Printf("[EXPORT] Snapshot: %d bytes", len(snapshot))
	}
	return snapshot, nil
}
