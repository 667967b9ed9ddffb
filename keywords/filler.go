package keywords

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// FillerWords is a replaceable list of domain filler words. Readers always
// observe a complete list: reloads swap the whole set at once.
type FillerWords struct {
	words atomic.Pointer[Set]
}

func NewFillerWords(words []string) *FillerWords {
	f := &FillerWords{}
	f.Replace(words)
	return f
}

func LoadFillerWords(path string) (*FillerWords, error) {
	f := &FillerWords{}
	if err := f.Load(path); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *FillerWords) Replace(words []string) {
	s := make(Set, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}

	f.words.Store(&s)
}

// Load reads a YAML list of words from path.
func (f *FillerWords) Load(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to open filler words file: %w", err)
	}

	var words []string
	if err := yaml.Unmarshal(buf, &words); err != nil {
		return fmt.Errorf("unable to parse filler words file: %w", err)
	}

	f.Replace(words)
	return nil
}

func (f *FillerWords) Contains(w string) bool {
	s := f.words.Load()
	return s != nil && s.Contains(w)
}

func (f *FillerWords) Len() int {
	s := f.words.Load()
	if s == nil {
		return 0
	}

	return s.Len()
}

// Watch reloads the list from path whenever the file changes. Bursts of
// events are merged into a single reload after delay. A failed reload keeps
// the previous list.
func (f *FillerWords) Watch(ctx context.Context, log *slog.Logger, path string, delay time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// editors replace files by rename, so watch the directory
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)

	go func() {
		defer w.Close()

		var reload <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				reload = time.After(delay)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("filler words watcher failed", "error", err)
			case <-reload:
				reload = nil
				if err := f.Load(path); err != nil {
					log.Warn("failed to reload filler words", "file", path, "error", err)
					continue
				}
				log.Info("filler words reloaded", "file", path, "words", f.Len())
			}
		}
	}()

	return nil
}
