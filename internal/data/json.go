package data

import (
	"encoding/json"
	"fmt"
	"os"

	"battery-saving-sensor/internal/model"
)

// SeriesDocument is the JSON shape of a single recorded series.
//
// Example:
//
//	{"name": "temperature", "samples": [{"timestamp": "2021-06-01T00:00:00Z", "value": 21.5}]}
type SeriesDocument struct {
	Name    string         `json:"name,omitempty"`
	Samples []model.Sample `json:"samples"`
}

func LoadSeriesJSON(path string) (*model.Series, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc SeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return model.NewSeries(doc.Samples)
}
