package readers

import (
	"strings"
)

type TxtFileReader struct{}

func (r *TxtFileReader) CanRead(name string) bool {
	return hasExt(name, ".txt", ".md")
}

func (r *TxtFileReader) ReadText(doc Document) (string, error) {
	return strings.ToValidUTF8(string(doc.Data), "�"), nil
}
