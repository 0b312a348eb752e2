package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanCatalog(t *testing.T) {
	dir := t.TempDir()
	writeRaw(t, dir, "log_1.csv", "time,temp,humidity\n2021-06-01T00:00:00Z,20,40\n")
	writeRaw(t, dir, "indoor.json", `{"samples":[{"timestamp":"2021-06-01T00:00:00Z","value":21}]}`)
	writeRaw(t, dir, "empty.json", `{"samples":[]}`)
	writeRaw(t, dir, "README.md", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	c, err := ScanCatalog(dir)
	require.NoError(t, err)
	require.Len(t, c.Datasets, 3)
	assert.Equal(t, "indoor", c.Datasets[0].ID)
	assert.Equal(t, Dataset{
		ID:      "log_1:humidity",
		Name:    "log_1 (humidity)",
		Path:    filepath.Join(dir, "log_1.csv"),
		Channel: "humidity",
		Format:  "csv",
	}, c.Datasets[1])
	assert.NotEmpty(t, c.UpdatedAt)
}

func TestCatalog_SaveLoadFind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "datasets.json")
	in := &Catalog{UpdatedAt: "2021-06-01T00:00:00Z", Datasets: []Dataset{{ID: "a", Path: "a.json", Format: "json"}}}
	require.NoError(t, SaveCatalog(in, path))

	got, err := LoadCatalog(path)
	require.NoError(t, err)

	d, ok := got.Find("a")
	assert.True(t, ok)
	assert.Equal(t, "a.json", d.Path)
	_, ok = got.Find("b")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Find("a")
	assert.False(t, ok)
}

func TestDefaultCatalogPath(t *testing.T) {
	t.Setenv("DATASETS_FILE", "/tmp/custom.json")
	assert.Equal(t, "/tmp/custom.json", DefaultCatalogPath())

	t.Setenv("DATASETS_FILE", "")
	assert.Equal(t, "./data/datasets.json", DefaultCatalogPath())
}

func TestCatalog_KeepNames(t *testing.T) {
	scanned := &Catalog{Datasets: []Dataset{
		{ID: "log_1:temp", Name: "log_1 (temp)"},
		{ID: "log_2:temp", Name: "log_2 (temp)"},
	}}
	prev := &Catalog{Datasets: []Dataset{
		{ID: "log_1:temp", Name: "Greenhouse"},
		{ID: "gone:temp", Name: "Removed"},
	}}

	assert.Equal(t, 1, scanned.KeepNames(prev))
	assert.Equal(t, "Greenhouse", scanned.Datasets[0].Name)
	assert.Equal(t, "log_2 (temp)", scanned.Datasets[1].Name)
	assert.Equal(t, 0, scanned.KeepNames(nil))
}

func TestScanCatalog_RescanSkipsOwnOutput(t *testing.T) {
	// GIVEN a data directory that also holds the catalog written by a previous scan
	dir := t.TempDir()
	writeRaw(t, dir, "log_1.csv", "time,temp\n2021-06-01T00:00:00Z,20\n")
	first, err := ScanCatalog(dir)
	require.NoError(t, err)
	require.NoError(t, SaveCatalog(first, filepath.Join(dir, "datasets.json")))

	// WHEN scanned again
	second, err := ScanCatalog(dir)
	require.NoError(t, err)

	// THEN the catalog file is not listed as a dataset
	assert.Equal(t, first.Datasets, second.Datasets)
	_, ok := second.Find("datasets")
	assert.False(t, ok)
}
