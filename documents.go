package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gamma-omg/resume-ranker/readers"
)

type nameFilter interface {
	CanRead(name string) bool
}

// collectDocuments loads files and, recursively, directories. Directory
// entries no reader accepts are skipped; files named explicitly are always
// loaded so that the ranker can report them.
func collectDocuments(log *slog.Logger, filter nameFilter, paths ...string) ([]readers.Document, error) {
	var docs []readers.Document
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("unable to stat %s: %w", p, err)
		}

		if !info.IsDir() {
			doc, err := readers.LoadDocument(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !filter.CanRead(path) {
				log.Warn(fmt.Sprintf("unsupported file: %s", path))
				return nil
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}

		sort.Strings(files)
		for _, f := range files {
			doc, err := readers.LoadDocument(f)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	return docs, nil
}
