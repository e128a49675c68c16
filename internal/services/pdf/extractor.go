// Package pdf provides PDF text extraction and the PDF directory listing.
//
// We use the ledongthuc/pdf library for text extraction.
// It's a pure Go implementation — no CGO or external dependencies required.
// This makes deployment simpler (just a single binary).
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a PDF yields no extractable text — usually an
// image-based or protected file. The message is user-facing.
var ErrNoText = errors.New("PDF에서 텍스트를 추출할 수 없습니다. 이미지 기반 PDF이거나 보호된 파일일 수 있습니다.")

// ExtractionResult holds the output from a PDF text extraction.
type ExtractionResult struct {
	Text      string // Extracted text content
	PageCount int    // Number of pages
	WordCount int    // Word count
}

// Extract reads a PDF from the given bytes and extracts all text content.
//
// Go Pattern: We accept a byte slice instead of a filename because the data
// may come from an HTTP upload (in memory), not a file on disk. The pdf
// library requires an io.ReaderAt for random access to the PDF structure.
func Extract(data []byte) (*ExtractionResult, error) {
	reader := bytes.NewReader(data)
	size := int64(len(data))

	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := pdfReader.NumPage()
	if pageCount == 0 {
		return nil, ErrNoText
	}

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages carry images only — skip, don't fail the document
			continue
		}

		if allText.Len() > 0 {
			allText.WriteString("\n")
		}
		allText.WriteString(strings.TrimSpace(text))
	}

	extractedText := strings.TrimSpace(allText.String())
	if extractedText == "" {
		return nil, ErrNoText
	}

	return &ExtractionResult{
		Text:      extractedText,
		PageCount: pageCount,
		WordCount: len(strings.Fields(extractedText)),
	}, nil
}

// ExtractFile extracts text from a PDF at the given path.
func ExtractFile(path string) (*ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Extract(data)
}

// ListPDFs returns the sorted, deduplicated names of PDF files in dir.
// The extension check is case-insensitive. A missing directory is created
// and yields an empty list rather than an error.
func ListPDFs(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create PDF directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list PDF directory: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ValidatePDF checks if the data looks like a valid PDF by checking the magic bytes.
func ValidatePDF(data []byte) bool {
	// PDF files start with "%PDF-"
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
