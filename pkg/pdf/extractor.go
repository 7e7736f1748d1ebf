package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns raw PDF bytes into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

type LedongthucExtractor struct{}

var _ Extractor = &LedongthucExtractor{}

func NewExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

func (e *LedongthucExtractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// IsPDF reports whether the attachment looks like a PDF, by declared mime
// type or filename extension.
func IsPDF(mimeType, filename string) bool {
	if strings.EqualFold(mimeType, "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
