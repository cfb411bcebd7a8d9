package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiview/internal/models"
)

const VaderName = "vader"

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag     = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	output = htmlTag.ReplaceAll(output, []byte(" "))
	plainText := RemoveLinks(html.UnescapeString(string(output)))

	return strings.Join(strings.Fields(plainText), " ")
}

// Vader labels text with the VADER lexicon. It needs no trained artifact and
// is tuned for English, so it serves as a fallback backend.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Name() string { return VaderName }

// Score returns the compound polarity of text in [-1, 1].
func (v *Vader) Score(text string) float64 {
	return v.analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound
}

func (v *Vader) Predict(ctx context.Context, texts []string) ([]models.Label, error) {
	labels := make([]models.Label, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if v.Score(text) >= 0 {
			labels[i] = models.LabelPositive
		} else {
			labels[i] = models.LabelNegative
		}
	}
	return labels, nil
}
