package pdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// ExtractText pulls the plain text out of every page of a PDF document.
// Used when a candidate uploads a CV as a PDF instead of raw text.
func ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	pages := make([]string, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	combined := strings.TrimSpace(strings.Join(pages, "\n"))
	if combined == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}

	return combined, nil
}
