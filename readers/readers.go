package readers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a single uploaded file. It lives for one matching request only.
type Document struct {
	Name string
	Data []byte
}

type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type FileReader interface {
	CanRead(name string) bool
	ReadText(doc Document) (string, error)
}

// Extractor turns documents into plain text using the first registered
// reader that accepts the document name.
type Extractor struct {
	readers []FileReader
}

func NewExtractor(readers ...FileReader) *Extractor {
	return &Extractor{readers: readers}
}

// DefaultExtractor handles pdf and docx natively and falls back to docconv
// for the remaining office and markup formats.
func DefaultExtractor() *Extractor {
	return NewExtractor(
		&PdfFileReader{},
		&DocxFileReader{},
		&TxtFileReader{},
		&UniversalFileReader{},
	)
}

func (e *Extractor) RegisterReader(readers ...FileReader) {
	e.readers = append(e.readers, readers...)
}

func (e *Extractor) CanRead(name string) bool {
	_, err := e.findReader(name)
	return err == nil
}

func (e *Extractor) Extract(doc Document) (string, error) {
	reader, err := e.findReader(doc.Name)
	if err != nil {
		return "", &ExtractionError{Name: doc.Name, Err: err}
	}

	text, err := reader.ReadText(doc)
	if err != nil {
		return "", &ExtractionError{Name: doc.Name, Err: err}
	}

	return text, nil
}

func (e *Extractor) findReader(name string) (FileReader, error) {
	for _, r := range e.readers {
		if r.CanRead(name) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("unable to find reader for file type: %s", filepath.Ext(name))
}

var ErrNotRegular = errors.New("not a regular file")

// LoadDocument reads a file from disk into a Document named after its base name.
func LoadDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Document{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("unable to read %s: %w", path, err)
	}

	return Document{Name: filepath.Base(path), Data: data}, nil
}

func hasExt(name string, exts ...string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}

	return false
}
