package data

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeries_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeRaw(t, dir, "indoor.json", `{"name":"indoor","samples":[
		{"timestamp":"2021-06-01T00:00:00Z","value":20},
		{"timestamp":"2021-06-01T00:05:00Z","value":21}
	]}`)

	s, err := LoadSeries(path, "ignored")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestLoadSeries_RawCSV(t *testing.T) {
	path := writeRaw(t, t.TempDir(), "log_1.csv", "time,temp\n2021-06-01T00:00:00Z,20\n")
	s, err := LoadSeries(path, "")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestLoadSeries_UnsupportedExtension(t *testing.T) {
	_, err := LoadSeries(filepath.Join(t.TempDir(), "data.xlsx"), "")
	assert.ErrorContains(t, err, "unsupported series file")
}
