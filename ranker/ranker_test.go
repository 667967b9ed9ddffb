package ranker

import (
	"context"
	"errors"
	"hash/fnv"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

const jobDescription = "Looking for a Python developer with strong SQL and AWS skills"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type hashEmbedder struct{}

func (hashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	res := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, 128)
		for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !('a' <= r && r <= 'z')
		}) {
			h := fnv.New32a()
			h.Write([]byte(w))
			v[h.Sum32()%128]++
		}
		res[i] = v
	}

	return res, nil
}

type mockScorer struct {
	mock.Mock
}

func (s *mockScorer) Score(ctx context.Context, jobDescription string, resumes []string) ([]float64, error) {
	args := s.Called(ctx, jobDescription, resumes)
	res, _ := args.Get(0).([]float64)
	return res, args.Error(1)
}

func (s *mockScorer) Layout() scoring.Layout {
	return scoring.LexicalLayout
}

func txt(name, content string) readers.Document {
	return readers.Document{Name: name, Data: []byte(content)}
}

func scenarioDocs() []readers.Document {
	return []readers.Document{
		txt("r2.txt", "Java, Spring, Kubernetes"),
		txt("r1.txt", "Python, SQL, AWS, Docker"),
	}
}

func Test_Rank_Lexical(t *testing.T) {
	r := New(readers.DefaultExtractor(), scoring.NewTfidfScorer(), WithLogger(discard))

	res, err := r.Rank(context.Background(), jobDescription, scenarioDocs())
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	assert.Equal(t, "r1.txt", res.Table.Rows[0].Resume)
	assert.Equal(t, "r2.txt", res.Table.Rows[1].Resume)
	assert.Greater(t, res.Table.Rows[0].Score, res.Table.Rows[1].Score)
	assert.Equal(t, scoring.LexicalLayout, res.Table.Layout)
	assert.Nil(t, res.Table.Rows[0].Matched)
	assert.Empty(t, res.Failures)
}

func Test_Rank_Semantic(t *testing.T) {
	r := New(readers.DefaultExtractor(), scoring.NewEmbeddingScorer(hashEmbedder{}), WithLogger(discard))

	res, err := r.Rank(context.Background(), jobDescription, scenarioDocs())
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	top := res.Table.Rows[0]
	assert.Equal(t, "r1.txt", top.Resume)
	assert.Subset(t, top.Matched, []string{"python", "sql", "aws"})
	assert.Equal(t, []string{"developer"}, top.Missing)
	assert.Equal(t, 75.0, top.SkillMatch)

	bottom := res.Table.Rows[1]
	assert.Nil(t, bottom.Matched)
	assert.Equal(t, 0.0, bottom.SkillMatch)

	for i, row := range res.Table.Rows {
		assert.Equal(t, i, row.Rank)
		assert.GreaterOrEqual(t, row.SkillMatch, 0.0)
		assert.LessOrEqual(t, row.SkillMatch, 100.0)
	}
}

func Test_Rank_KeywordGapOverride(t *testing.T) {
	r := New(readers.DefaultExtractor(), scoring.NewTfidfScorer(), WithLogger(discard), WithKeywordGap(true))

	res, err := r.Rank(context.Background(), jobDescription, scenarioDocs())
	require.NoError(t, err)
	assert.True(t, res.Table.Layout.KeywordGap)
	assert.Equal(t, []string{"aws", "python", "sql"}, res.Table.Rows[0].Matched)

	r = New(readers.DefaultExtractor(), scoring.NewEmbeddingScorer(hashEmbedder{}), WithLogger(discard), WithKeywordGap(false))
	res, err = r.Rank(context.Background(), jobDescription, scenarioDocs())
	require.NoError(t, err)
	assert.False(t, res.Table.Layout.KeywordGap)
	assert.Nil(t, res.Table.Rows[0].Matched)
}

func Test_Rank_EmptyInput(t *testing.T) {
	scorer := new(mockScorer)
	r := New(readers.DefaultExtractor(), scorer, WithLogger(discard))

	var cases = []struct {
		job  string
		docs []readers.Document
	}{
		{job: "", docs: scenarioDocs()},
		{job: "  \n\t", docs: scenarioDocs()},
		{job: jobDescription, docs: nil},
	}

	for _, c := range cases {
		res, err := r.Rank(context.Background(), c.job, c.docs)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, res)
	}

	scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Rank_CorruptDocument(t *testing.T) {
	r := New(readers.DefaultExtractor(), scoring.NewTfidfScorer(), WithLogger(discard))

	docs := []readers.Document{
		txt("a.txt", "Python and SQL"),
		{Name: "broken.pdf", Data: []byte("not a pdf at all")},
		txt("b.txt", "AWS and Docker"),
		txt("c.txt", "Java"),
	}

	res, err := r.Rank(context.Background(), jobDescription, docs)
	require.NoError(t, err)
	assert.Len(t, res.Table.Rows, 3)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "broken.pdf", res.Failures[0].Name)
}

func Test_Rank_AllDocumentsFail(t *testing.T) {
	scorer := new(mockScorer)
	r := New(readers.DefaultExtractor(), scorer, WithLogger(discard))

	res, err := r.Rank(context.Background(), jobDescription, []readers.Document{
		{Name: "a.pdf", Data: []byte("x")},
		{Name: "b.exe", Data: []byte("y")},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Table.Rows)
	assert.Len(t, res.Failures, 2)
	scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Rank_ScorerError(t *testing.T) {
	cause := &scoring.ModelLoadError{Model: "onnx", Err: errors.New("missing runtime")}
	scorer := new(mockScorer)
	scorer.On("Score", mock.Anything, jobDescription, []string{"Python"}).Return(nil, cause)

	r := New(readers.DefaultExtractor(), scorer, WithLogger(discard))
	res, err := r.Rank(context.Background(), jobDescription, []readers.Document{txt("a.txt", "Python")})

	var loadErr *scoring.ModelLoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Nil(t, res)
	scorer.AssertExpectations(t)
}

func Test_Rank_StableTies(t *testing.T) {
	scorer := new(mockScorer)
	scorer.On("Score", mock.Anything, mock.Anything, mock.Anything).Return([]float64{0.5, 0.9, 0.5, 0.5}, nil)

	r := New(readers.DefaultExtractor(), scorer, WithLogger(discard))
	res, err := r.Rank(context.Background(), jobDescription, []readers.Document{
		txt("a.txt", "a"), txt("b.txt", "b"), txt("c.txt", "c"), txt("d.txt", "d"),
	})
	require.NoError(t, err)

	var names []string
	for _, row := range res.Table.Rows {
		names = append(names, row.Resume)
	}
	assert.Equal(t, []string{"b.txt", "a.txt", "c.txt", "d.txt"}, names)
}
