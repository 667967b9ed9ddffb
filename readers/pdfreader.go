package readers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PdfFileReader struct {
}

func (r *PdfFileReader) CanRead(name string) bool {
	return hasExt(name, ".pdf")
}

// ReadText concatenates the plain text of every page in page order.
func (r *PdfFileReader) ReadText(doc Document) (text string, err error) {
	// the pdf parser panics on some malformed object streams
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("failed to read pdf document: %v", p)
		}
	}()

	pr, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf document: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= pr.NumPage(); i++ {
		page := pr.Page(i)
		if page.V.IsNull() {
			continue
		}

		t, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}

		sb.WriteString(t)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
