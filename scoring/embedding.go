package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amikos-tech/chroma-go/pkg/embeddings"
)

type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load embedding model %s: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// LoadFunc initializes an embedding function. The returned closer may be nil.
type LoadFunc func() (embeddings.EmbeddingFunction, func() error, error)

// Model is a lazily loaded embedding function shared by all requests.
// It is created once by the caller and passed around by reference.
type Model struct {
	name string
	load LoadFunc

	mu     sync.Mutex
	ef     embeddings.EmbeddingFunction
	closer func() error
}

func NewModel(name string, load LoadFunc) *Model {
	return &Model{name: name, load: load}
}

func (m *Model) Name() string {
	return m.name
}

// EmbeddingFunction loads the model on first use. A failed load is not
// cached: the next request tries again.
func (m *Model) EmbeddingFunction() (embeddings.EmbeddingFunction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ef != nil {
		return m.ef, nil
	}

	ef, closer, err := m.load()
	if err != nil {
		return nil, &ModelLoadError{Model: m.name, Err: err}
	}
	if ef == nil {
		return nil, &ModelLoadError{Model: m.name, Err: errors.New("no embedding function")}
	}

	m.ef, m.closer = ef, closer
	return ef, nil
}

func (m *Model) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ef, err := m.EmbeddingFunction()
	if err != nil {
		return nil, err
	}

	embs, err := ef.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(embs) != len(texts) {
		return nil, fmt.Errorf("embedding model returned %d vectors for %d documents", len(embs), len(texts))
	}

	res := make([][]float32, len(embs))
	for i, e := range embs {
		res[i] = e.ContentAsFloat32()
	}

	return res, nil
}

func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closer == nil {
		return nil
	}

	err := m.closer()
	m.ef, m.closer = nil, nil
	return err
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingScorer scores resumes by cosine similarity of sentence
// embeddings, reported as a percentage.
type EmbeddingScorer struct {
	embedder Embedder
}

func NewEmbeddingScorer(embedder Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder}
}

func (s *EmbeddingScorer) Layout() Layout {
	return SemanticLayout
}

func (s *EmbeddingScorer) Score(ctx context.Context, jobDescription string, resumes []string) ([]float64, error) {
	texts := make([]string, 0, len(resumes)+1)
	texts = append(texts, jobDescription)
	texts = append(texts, resumes...)

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(texts))
	}

	job := widen(vectors[0])
	scores := make([]float64, len(resumes))
	for i := range resumes {
		v := widen(vectors[i+1])
		if len(v) != len(job) {
			return nil, fmt.Errorf("embedding size mismatch: %d != %d", len(v), len(job))
		}
		scores[i] = Percent(cosine(job, v))
	}

	return scores, nil
}

func widen(v []float32) []float64 {
	res := make([]float64, len(v))
	for i, x := range v {
		res[i] = float64(x)
	}

	return res
}
