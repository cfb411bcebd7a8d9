package report

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	cloudWidth    = 800
	cloudHeight   = 400
	titleHeight   = 48
	maxFontSize   = 72.0
	minFontSize   = 10.0
	spiralStep    = 0.1
	spiralSpacing = 2.0
)

var cloudPalette = []color.Color{
	color.RGBA{0x44, 0x01, 0x54, 0xff},
	color.RGBA{0x3b, 0x52, 0x8b, 0xff},
	color.RGBA{0x21, 0x91, 0x8c, 0xff},
	color.RGBA{0x5e, 0xc9, 0x62, 0xff},
	color.RGBA{0x31, 0x68, 0x8e, 0xff},
	color.RGBA{0x35, 0xb7, 0x79, 0xff},
}

var loadFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

type WordCount struct {
	Word  string
	Count int
}

// WordFrequencies counts whitespace separated words across texts, most
// frequent first, ties broken alphabetically. maxWords <= 0 keeps all.
func WordFrequencies(texts []string, maxWords int) []WordCount {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, w := range strings.Fields(text) {
			counts[w]++
		}
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return words
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

func (b box) inside(w, h float64) bool {
	return b.x0 >= 0 && b.y0 >= 0 && b.x1 <= w && b.y1 <= h
}

// WordCloud renders words sized by frequency under a title. Placement stops
// at the first word that does not fit even at the minimum size. An empty
// word list renders a placeholder instead of failing.
func WordCloud(words []WordCount, title string) ([]byte, error) {
	ttf, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc := gg.NewContext(cloudWidth, cloudHeight+titleHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()
	face := func(size float64) font.Face {
		size = math.Round(size)
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(ttf, &truetype.Options{Size: size})
		faces[size] = f
		return f
	}

	dc.SetFontFace(face(24))
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, cloudWidth/2, titleHeight/2, 0.5, 0.5)

	if len(words) == 0 {
		dc.SetFontFace(face(20))
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.DrawStringAnchored("No words to display", cloudWidth/2, titleHeight+cloudHeight/2, 0.5, 0.5)
		return encodePNG(dc.Image())
	}

	placed := make([]box, 0, len(words))
	top := float64(words[0].Count)
	for i, wc := range words {
		fitted := false
		for size := maxFontSize * (0.5 + 0.5*float64(wc.Count)/top); size >= minFontSize; size *= 0.8 {
			dc.SetFontFace(face(size))
			w, h := dc.MeasureString(wc.Word)
			if b, ok := placeOnSpiral(w, h, placed); ok {
				placed = append(placed, b)
				dc.SetColor(cloudPalette[i%len(cloudPalette)])
				dc.DrawStringAnchored(wc.Word, (b.x0+b.x1)/2, titleHeight+(b.y0+b.y1)/2, 0.5, 0.5)
				fitted = true
				break
			}
		}
		// the cloud is full once a word fails at the minimum size
		if !fitted {
			break
		}
	}

	return encodePNG(dc.Image())
}

// placeOnSpiral walks an Archimedean spiral out from the centre of the
// cloud area and returns the first free box of size w x h.
func placeOnSpiral(w, h float64, placed []box) (box, bool) {
	cx, cy := cloudWidth/2.0, cloudHeight/2.0
	maxRadius := math.Hypot(cx, cy)

	for theta := 0.0; ; theta += spiralStep {
		r := spiralSpacing * theta
		if r > maxRadius {
			return box{}, false
		}
		x := cx + r*math.Cos(theta)
		y := cy + r*math.Sin(theta)*0.5
		b := box{x - w/2, y - h/2, x + w/2, y + h/2}
		if !b.inside(cloudWidth, cloudHeight) {
			continue
		}

		free := true
		for _, p := range placed {
			if b.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return b, true
		}
	}
}
