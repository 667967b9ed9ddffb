package docstore

import (
	"context"
	"fmt"
	"strconv"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/google/uuid"

	"github.com/gamma-omg/resume-ranker/scoring"
)

const collectionPrefix = "resume-match-"

type collection interface {
	Add(ctx context.Context, opts ...chroma.CollectionUpdateOption) error
	Query(ctx context.Context, opts ...chroma.CollectionQueryOption) (chroma.QueryResult, error)
}

type efSource interface {
	EmbeddingFunction() (embeddings.EmbeddingFunction, error)
}

// ChromaStore scores resumes through a Chroma server. Every request gets a
// fresh cosine-space collection that is dropped once the scores are read.
type ChromaStore struct {
	model  efSource
	open   func(ctx context.Context, name string, ef embeddings.EmbeddingFunction) (collection, error)
	remove func(ctx context.Context, name string) error
}

type ChromaStoreConfig struct {
	BaseURL string
	Model   *scoring.Model
}

func NewChromaStore(cfg ChromaStoreConfig) (*ChromaStore, error) {
	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	return &ChromaStore{
		model: cfg.Model,
		open: func(ctx context.Context, name string, ef embeddings.EmbeddingFunction) (collection, error) {
			return client.GetOrCreateCollection(ctx, name,
				chroma.WithEmbeddingFunctionCreate(ef),
				chroma.WithHNSWSpaceCreate(embeddings.COSINE),
			)
		},
		remove: func(ctx context.Context, name string) error {
			return client.DeleteCollection(ctx, name)
		},
	}, nil
}

func (ds *ChromaStore) Layout() scoring.Layout {
	return scoring.SemanticLayout
}

func (ds *ChromaStore) Score(ctx context.Context, jobDescription string, resumes []string) (scores []float64, err error) {
	ef, err := ds.model.EmbeddingFunction()
	if err != nil {
		return nil, err
	}

	name := collectionPrefix + uuid.NewString()
	col, err := ds.open(ctx, name, ef)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	defer func() {
		if e := ds.remove(context.WithoutCancel(ctx), name); e != nil && err == nil {
			err = fmt.Errorf("failed to drop collection %s: %w", name, e)
		}
	}()

	ids := make([]chroma.DocumentID, len(resumes))
	for i := range resumes {
		ids[i] = chroma.DocumentID(strconv.Itoa(i))
	}

	err = col.Add(ctx, chroma.WithIDs(ids...), chroma.WithTexts(resumes...))
	if err != nil {
		return nil, fmt.Errorf("failed to add resumes: %w", err)
	}

	r, err := col.Query(ctx,
		chroma.WithQueryTexts(jobDescription),
		chroma.WithNResults(len(resumes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query resumes: %w", err)
	}

	return readScores(r, len(resumes))
}

// readScores maps cosine distances back to input order as percentages.
func readScores(r chroma.QueryResult, n int) ([]float64, error) {
	idGroups := r.GetIDGroups()
	distGroups := r.GetDistancesGroups()
	if len(idGroups) == 0 || len(distGroups) == 0 {
		return nil, fmt.Errorf("empty query result")
	}

	ids, dists := idGroups[0], distGroups[0]
	if len(ids) != n || len(dists) != n {
		return nil, fmt.Errorf("query returned %d results for %d resumes", len(ids), n)
	}

	scores := make([]float64, n)
	seen := make([]bool, n)
	for i, id := range ids {
		idx, err := strconv.Atoi(string(id))
		if err != nil || idx < 0 || idx >= n || seen[idx] {
			return nil, fmt.Errorf("unexpected document id %q", id)
		}

		seen[idx] = true
		scores[idx] = scoring.Percent(1 - float64(dists[i]))
	}

	return scores, nil
}
