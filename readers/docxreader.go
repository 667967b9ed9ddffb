package readers

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

type DocxFileReader struct{}

func (r *DocxFileReader) CanRead(name string) bool {
	return hasExt(name, ".docx")
}

func (r *DocxFileReader) ReadText(doc Document) (string, error) {
	d, err := docx.ReadDocxFromMemory(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer d.Close()

	return wordMLText(d.Editable().GetContent()), nil
}

// wordMLText flattens a WordprocessingML body into lines of text.
func wordMLText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")

	return strings.TrimSpace(html.UnescapeString(content))
}
