package ranker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gamma-omg/resume-ranker/keywords"
	"github.com/gamma-omg/resume-ranker/readers"
	"github.com/gamma-omg/resume-ranker/scoring"
)

var ErrEmptyInput = errors.New("please upload resumes and enter a job description before matching")

type TextExtractor interface {
	Extract(doc readers.Document) (string, error)
}

type KeywordExtractor interface {
	Extract(text string) keywords.Set
}

type Result struct {
	Table    scoring.Table
	Failures []*readers.ExtractionError
}

type Ranker struct {
	log        *slog.Logger
	extractor  TextExtractor
	keywords   KeywordExtractor
	scorer     scoring.Scorer
	keywordGap *bool
}

type Option func(*Ranker)

func WithLogger(log *slog.Logger) Option {
	return func(r *Ranker) {
		r.log = log
	}
}

// WithKeywordGap overrides whether rows carry matched/missing keywords.
// By default this follows the scorer layout.
func WithKeywordGap(enabled bool) Option {
	return func(r *Ranker) {
		r.keywordGap = &enabled
	}
}

func WithKeywordExtractor(kw KeywordExtractor) Option {
	return func(r *Ranker) {
		r.keywords = kw
	}
}

func New(extractor TextExtractor, scorer scoring.Scorer, opts ...Option) *Ranker {
	r := &Ranker{
		log:       slog.Default(),
		extractor: extractor,
		keywords:  keywords.NewExtractor(nil),
		scorer:    scorer,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Ranker) Layout() scoring.Layout {
	layout := r.scorer.Layout()
	if r.keywordGap != nil {
		layout = layout.WithKeywordGap(*r.keywordGap)
	}

	return layout
}

// Rank scores every readable document against the job description. Documents
// that cannot be read are reported in Result.Failures and left out of the
// table; any scoring error fails the whole batch.
func (r *Ranker) Rank(ctx context.Context, jobDescription string, docs []readers.Document) (*Result, error) {
	if strings.TrimSpace(jobDescription) == "" || len(docs) == 0 {
		return nil, ErrEmptyInput
	}

	log := r.log.With("request_id", uuid.NewString())
	start := time.Now()

	res := &Result{Table: scoring.Table{Layout: r.Layout()}}

	names := make([]string, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		text, err := r.extractor.Extract(doc)
		if err != nil {
			var extErr *readers.ExtractionError
			if !errors.As(err, &extErr) {
				extErr = &readers.ExtractionError{Name: doc.Name, Err: err}
			}

			log.Warn("skipping document", "file", doc.Name, "error", extErr.Err)
			res.Failures = append(res.Failures, extErr)
			continue
		}

		names = append(names, doc.Name)
		texts = append(texts, text)
	}

	if len(texts) == 0 {
		log.Warn("no readable documents", "documents", len(docs))
		return res, nil
	}

	scores, err := r.scorer.Score(ctx, jobDescription, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to score resumes: %w", err)
	}
	if len(scores) != len(texts) {
		return nil, fmt.Errorf("scorer returned %d scores for %d resumes", len(scores), len(texts))
	}

	var jobKeywords keywords.Set
	if res.Table.Layout.KeywordGap {
		jobKeywords = r.keywords.Extract(jobDescription)
	}

	res.Table.Rows = make([]scoring.Row, 0, len(texts))
	for i := range texts {
		row := scoring.Row{Resume: names[i], Score: scores[i]}
		if res.Table.Layout.KeywordGap {
			resumeKeywords := r.keywords.Extract(texts[i])
			matched := jobKeywords.Intersect(resumeKeywords)
			row.Matched = matched.Sorted()
			row.Missing = jobKeywords.Difference(resumeKeywords).Sorted()
			row.SkillMatch = scoring.SkillMatch(matched.Len(), jobKeywords.Len())
		}
		res.Table.Rows = append(res.Table.Rows, row)
	}

	res.Table.Sort()

	log.Info("matching complete",
		"documents", len(docs),
		"scored", len(res.Table.Rows),
		"failed", len(res.Failures),
		"duration", time.Since(start))

	return res, nil
}
