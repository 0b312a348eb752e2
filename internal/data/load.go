package data

import (
	"fmt"
	"path/filepath"
	"strings"

	"battery-saving-sensor/internal/model"
)

// LoadSeries materializes one channel from a .parquet table, a raw .csv log or a .json document.
// channel is ignored for JSON.
func LoadSeries(path, channel string) (*model.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		t, err := ReadParquet(path)
		if err != nil {
			return nil, err
		}
		return t.Series(channel)
	case ".csv":
		t, err := readRawFile(path)
		if err != nil {
			return nil, err
		}
		return t.Series(channel)
	case ".json":
		return LoadSeriesJSON(path)
	default:
		return nil, fmt.Errorf("unsupported series file %s (want .parquet, .csv or .json)", path)
	}
}
