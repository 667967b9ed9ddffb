package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/gamma-omg/resume-ranker/keywords"
)

var ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")

// TfidfScorer scores resumes by cosine similarity of TF-IDF vectors fitted
// on the job description together with all resumes.
type TfidfScorer struct{}

func NewTfidfScorer() *TfidfScorer {
	return &TfidfScorer{}
}

func (s *TfidfScorer) Layout() Layout {
	return LexicalLayout
}

func (s *TfidfScorer) Score(_ context.Context, jobDescription string, resumes []string) ([]float64, error) {
	docs := make([][]string, 0, len(resumes)+1)
	docs = append(docs, tokenize(jobDescription))
	for _, r := range resumes {
		docs = append(docs, tokenize(r))
	}

	vectors, err := tfidf(docs)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(resumes))
	for i := range resumes {
		scores[i] = vectors[0].dot(vectors[i+1])
	}

	return scores, nil
}

// sparseVector maps vocabulary indexes to weights; absent terms are zero.
type sparseVector map[int]float64

func (v sparseVector) dot(o sparseVector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}

	var res float64
	for j, w := range v {
		res += w * o[j]
	}

	return res
}

// tfidf builds L2-normalized vectors with raw term counts and smoothed idf:
// idf(t) = ln((1+n)/(1+df(t))) + 1. Documents without terms stay empty.
func tfidf(docs [][]string) ([]sparseVector, error) {
	vocab := make(map[string]int)
	vectors := make([]sparseVector, len(docs))
	for i, d := range docs {
		vectors[i] = make(sparseVector, len(d))
		for _, t := range d {
			j, ok := vocab[t]
			if !ok {
				j = len(vocab)
				vocab[t] = j
			}
			vectors[i][j]++
		}
	}
	if len(vocab) == 0 {
		return nil, ErrEmptyVocabulary
	}

	df := make([]float64, len(vocab))
	for _, v := range vectors {
		for j := range v {
			df[j]++
		}
	}

	n := float64(len(docs))
	for _, v := range vectors {
		var norm float64
		for j, c := range v {
			w := c * (math.Log((1+n)/(1+df[j])) + 1)
			v[j] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for j := range v {
			v[j] /= norm
		}
	}

	return vectors, nil
}

// tokenize lowercases text and keeps runs of two or more word characters
// that are not English stop words.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
	})

	res := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 || keywords.IsStopWord(w) {
			continue
		}
		res = append(res, w)
	}

	return res
}
