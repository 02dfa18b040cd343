package export

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// VerifyPDF reads data back as a PDF and checks it holds exactly one page
func VerifyPDF(data []byte) error {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to read pdf: %w", err)
	}
	if n := reader.NumPage(); n != 1 {
		return fmt.Errorf("expected 1 page, got %d", n)
	}
	return nil
}
