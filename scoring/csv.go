package scoring

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Filename is the name the result table is exported under.
const Filename = "resume_match_results.csv"

func (t *Table) records() [][]string {
	res := make([][]string, 0, len(t.Rows)+1)
	res = append(res, t.Layout.Header())

	for _, r := range t.Rows {
		rec := []string{r.Resume, formatFloat(r.Score)}
		if t.Layout.KeywordGap {
			rec = append(rec, formatFloat(r.SkillMatch), joinKeywords(r.Matched), joinKeywords(r.Missing))
		}
		res = append(res, rec)
	}

	return res
}

// WriteCSV writes the header row and one record per row, without the rank.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.records()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	return nil
}

func ReadCSV(r io.Reader) (Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, errors.New("csv has no header")
	}

	header := records[0]
	var layout Layout
	switch {
	case len(header) == 2:
		layout = Layout{ScoreColumn: header[1]}
	case len(header) == 5 && header[2] == SkillMatchColumn:
		layout = Layout{ScoreColumn: header[1], KeywordGap: true}
	default:
		return Table{}, fmt.Errorf("unexpected csv header: %s", strings.Join(header, ","))
	}
	if header[0] != ResumeColumn {
		return Table{}, fmt.Errorf("unexpected first column: %s", header[0])
	}

	t := Table{Layout: layout}
	for i, rec := range records[1:] {
		score, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return Table{}, fmt.Errorf("row %d: invalid score: %w", i, err)
		}

		row := Row{Rank: i, Resume: rec[0], Score: score}
		if layout.KeywordGap {
			row.SkillMatch, err = strconv.ParseFloat(rec[2], 64)
			if err != nil {
				return Table{}, fmt.Errorf("row %d: invalid skill match: %w", i, err)
			}
			row.Matched = splitKeywords(rec[3])
			row.Missing = splitKeywords(rec[4])
		}

		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
