package scoring

import (
	"slices"
	"strings"
)

const (
	ResumeColumn     = "Resume"
	SkillMatchColumn = "Skill Match (%)"
	MatchedColumn    = "Matched Keywords"
	MissingColumn    = "Missing Keywords"
)

// Layout describes the columns of a result table.
type Layout struct {
	ScoreColumn string
	KeywordGap  bool
}

var (
	LexicalLayout  = Layout{ScoreColumn: "Match Score"}
	SemanticLayout = Layout{ScoreColumn: "Match Score (%)", KeywordGap: true}
)

func (l Layout) WithKeywordGap(enabled bool) Layout {
	l.KeywordGap = enabled
	return l
}

func (l Layout) Header() []string {
	h := []string{ResumeColumn, l.ScoreColumn}
	if l.KeywordGap {
		h = append(h, SkillMatchColumn, MatchedColumn, MissingColumn)
	}

	return h
}

type Row struct {
	Rank       int
	Resume     string
	Score      float64
	SkillMatch float64
	Matched    []string
	Missing    []string
}

type Table struct {
	Layout Layout
	Rows   []Row
}

// Record is the JSON form of a row. The gap fields are present exactly when
// the table layout has keyword gap columns, zero values included.
type Record struct {
	Rank   int     `json:"rank"`
	Resume string  `json:"resume"`
	Score  float64 `json:"score"`
	*Gap
}

type Gap struct {
	SkillMatch float64  `json:"skill_match"`
	Matched    []string `json:"matched_keywords"`
	Missing    []string `json:"missing_keywords"`
}

func (t Table) Records() []Record {
	recs := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		recs[i] = Record{Rank: r.Rank, Resume: r.Resume, Score: r.Score}
		if t.Layout.KeywordGap {
			recs[i].Gap = &Gap{
				SkillMatch: r.SkillMatch,
				Matched:    nonNil(r.Matched),
				Missing:    nonNil(r.Missing),
			}
		}
	}

	return recs
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}

	return words
}

// Sort orders rows by score descending, keeping input order for ties, and
// renumbers ranks from zero.
func (t *Table) Sort() {
	slices.SortStableFunc(t.Rows, func(a, b Row) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	for i := range t.Rows {
		t.Rows[i].Rank = i
	}
}

// SkillMatch is the share of job keywords found in the resume, as a
// percentage. It is zero when the job has no keywords.
func SkillMatch(matched, jobKeywords int) float64 {
	if jobKeywords == 0 {
		return 0
	}

	return Round2(float64(matched) / float64(jobKeywords) * 100)
}

func joinKeywords(words []string) string {
	return strings.Join(words, ", ")
}

func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
