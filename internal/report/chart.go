package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 640
	chartHeight = 480
)

var (
	pieColors = map[models.Label]drawing.Color{
		models.LabelPositive: drawing.ColorFromHex("4CAF50"),
		models.LabelNegative: drawing.ColorFromHex("FF5722"),
	}
	barColors = map[models.Label]drawing.Color{
		models.LabelPositive: drawing.ColorFromHex("21918C"),
		models.LabelNegative: drawing.ColorFromHex("440154"),
	}
)

// SegmentationChart renders the percentage pie and the count bar chart side
// by side into a single PNG.
func SegmentationChart(counts map[models.Label]int, percentages map[models.Label]float64) ([]byte, error) {
	pie, err := renderPie(percentages)
	if err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	bar, err := renderBar(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return sideBySide(pie, bar)
}

func renderPie(percentages map[models.Label]float64) ([]byte, error) {
	values := make([]chart.Value, 0, len(models.Labels))
	for _, l := range models.Labels {
		pct := percentages[l]
		if pct <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: pct,
			Label: fmt.Sprintf("%s %.1f%%", l, pct),
			Style: chart.Style{
				FillColor:   pieColors[l],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontSize:    14,
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no sentiment to plot")
	}

	pie := chart.PieChart{
		Title:  "Sentiment Percentages",
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBar(counts map[models.Label]int) ([]byte, error) {
	highest := 0
	bars := make([]chart.Value, 0, len(models.Labels))
	for _, l := range models.Labels {
		c := counts[l]
		if c > highest {
			highest = c
		}
		bars = append(bars, chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%s (%d)", l, c),
			Style: chart.Style{
				FillColor:   barColors[l],
				StrokeColor: barColors[l],
			},
		})
	}

	headroom := highest / 10
	if headroom < 1 {
		headroom = 1
	}

	bar := chart.BarChart{
		Title:      "Sentiment Distribution",
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   120,
		BarSpacing: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(highest + headroom)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sideBySide(left, right []byte) ([]byte, error) {
	l, err := png.Decode(bytes.NewReader(left))
	if err != nil {
		return nil, err
	}
	r, err := png.Decode(bytes.NewReader(right))
	if err != nil {
		return nil, err
	}

	lb, rb := l.Bounds(), r.Bounds()
	dc := gg.NewContext(lb.Dx()+rb.Dx(), max(lb.Dy(), rb.Dy()))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(l, 0, 0)
	dc.DrawImage(r, lb.Dx(), 0)

	return encodePNG(dc.Image())
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
