package models

import (
	"fmt"
	"strings"
)

// Label is a predicted sentiment class.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
)

// Labels lists every label in display order.
var Labels = []Label{LabelPositive, LabelNegative}

func (l Label) Valid() bool {
	return l == LabelPositive || l == LabelNegative
}

// Record is one spreadsheet row. Content holds the raw cell value and may be
// any type the sheet produced (string, float64, bool or nil).
type Record struct {
	Row         int    `json:"row"`
	Content     any    `json:"content"`
	CleanedText string `json:"cleaned_text"`
	Sentiment   Label  `json:"sentiment"`
}

// Batch is every record read from one uploaded spreadsheet, in sheet order.
type Batch []Record

func (b Batch) CleanedTexts() []string {
	texts := make([]string, len(b))
	for i, r := range b {
		texts[i] = r.CleanedText
	}
	return texts
}

// ParseLabel accepts a label in any case with surrounding whitespace.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown sentiment label %q", s)
	}
	return l, nil
}
