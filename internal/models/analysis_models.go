package models

import "time"

// Summary is the aggregate outcome of one analysis. It is what gets cached,
// stored in history and published as an event; records themselves are not.
type Summary struct {
	ID            string            `json:"id" dynamodbav:"id"`
	Filename      string            `json:"filename" dynamodbav:"filename"`
	Preprocessing bool              `json:"preprocessing" dynamodbav:"preprocessing"`
	Backend       string            `json:"backend" dynamodbav:"backend"`
	Total         int               `json:"total" dynamodbav:"total"`
	Counts        map[Label]int     `json:"counts" dynamodbav:"counts"`
	Percentages   map[Label]float64 `json:"percentages" dynamodbav:"percentages"`
	CreatedAt     time.Time         `json:"created_at" dynamodbav:"created_at"`
}

// Report is a Summary plus the rendered images, each a base64 encoded PNG.
type Report struct {
	Summary              Summary `json:"summary"`
	SegmentationPNG      string  `json:"segmentation_png"`
	PositiveWordCloudPNG string  `json:"positive_wordcloud_png"`
	NegativeWordCloudPNG string  `json:"negative_wordcloud_png"`
}
