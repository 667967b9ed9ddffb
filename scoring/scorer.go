// Package scoring computes similarity between a job description and a batch
// of resumes and assembles the ranked result table.
package scoring

import (
	"context"
	"math"
)

// Scorer returns one similarity score per resume, in input order. Scores
// are computed jointly over the whole batch, so any error fails the batch.
type Scorer interface {
	Score(ctx context.Context, jobDescription string, resumes []string) ([]float64, error)
	Layout() Layout
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent turns a [0,1] similarity into a percentage rounded to two decimals.
func Percent(v float64) float64 {
	return Round2(v * 100)
}
