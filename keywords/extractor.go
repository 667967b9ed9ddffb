package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor reduces free text to the set of words worth comparing between
// a job description and a resume.
type Extractor struct {
	filler *FillerWords
}

func NewExtractor(filler *FillerWords) *Extractor {
	if filler == nil {
		filler = NewFillerWords(DefaultFillerWords)
	}

	return &Extractor{filler: filler}
}

func (e *Extractor) Extract(text string) Set {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	res := make(Set)
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 || IsStopWord(w) || e.filler.Contains(w) {
			continue
		}
		res[w] = struct{}{}
	}

	return res
}
