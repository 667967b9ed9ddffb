package readers

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv/v2"
)

type UniversalFileReader struct {
}

func (r *UniversalFileReader) CanRead(name string) bool {
	return hasExt(name, ".odt", ".doc", ".rtf", ".pages", ".xml", ".html", ".htm")
}

func (r *UniversalFileReader) ReadText(doc Document) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(doc.Data), docconv.MimeTypeByExtension(doc.Name), false)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	return res.Body, nil
}
