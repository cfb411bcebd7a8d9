package preprocess

// Pipeline applies cleaning, and when Enabled the full Indonesian
// normalization chain, to raw cell values.
type Pipeline struct {
	Enabled bool
}

// Apply runs clean -> stopwords -> stem -> slang, or only clean when disabled.
func (p Pipeline) Apply(v any) string {
	text := CleanText(v)
	if !p.Enabled {
		return text
	}
	text = RemoveStopwords(text)
	text = Stem(text)
	return Normalize(text)
}

func (p Pipeline) ApplyAll(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = p.Apply(v)
	}
	return out
}
