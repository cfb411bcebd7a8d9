package preprocess

import "strings"

// slang maps informal Indonesian chat tokens to their standard form.
// Values are inserted verbatim, multi-word values are not split again.
var slang = map[string]string{
	"gw":  "saya",
	"loe": "kamu",
	"yg":  "yang",
	"gk":  "tidak",
	"ga":  "tidak",
	"gak": "tidak",
	"aja": "saja",
	"btw": "by the way",
	"klo": "kalau",
	"nih": "ini",
	"tdk": "tidak",
	"dgn": "dengan",
	"sdh": "sudah",
}

// Normalize replaces slang tokens with their canonical form.
func Normalize(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if canonical, ok := slang[w]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}
