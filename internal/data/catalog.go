package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Dataset is one replayable series known to the API.
type Dataset struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Channel string `json:"channel,omitempty"`
	Format  string `json:"format"` // "parquet", "csv" or "json"
}

// Catalog represents a collection of datasets
type Catalog struct {
	UpdatedAt string    `json:"updated_at"` // ISO 8601 timestamp
	Datasets  []Dataset `json:"datasets"`
}

// Find returns the dataset with the given id.
func (c *Catalog) Find(id string) (Dataset, bool) {
	if c == nil {
		return Dataset{}, false
	}
	for _, d := range c.Datasets {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}

// LoadCatalog loads a catalog from a JSON file
func LoadCatalog(filePath string) (*Catalog, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &c, nil
}

// SaveCatalog saves a catalog to a JSON file
func SaveCatalog(c *Catalog, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}

// DefaultCatalogPath returns the default path for the catalog file
func DefaultCatalogPath() string {
	if path := os.Getenv("DATASETS_FILE"); path != "" {
		return path
	}
	return "./data/datasets.json"
}

// ScanCatalog builds a catalog from the series files in dir.
// Tables (.parquet, .csv) yield one dataset per channel with id "<stem>:<channel>".
// JSON files are listed only when they hold a non-empty series document.
func ScanCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	c := &Catalog{UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		ext := strings.ToLower(filepath.Ext(e.Name()))
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))

		var t *Table
		switch ext {
		case ".json":
			// other JSON, such as the catalog itself, may share the directory
			if !hasSamples(path) {
				continue
			}
			c.Datasets = append(c.Datasets, Dataset{ID: stem, Name: stem, Path: path, Format: "json"})
			continue
		case ".parquet":
			t, err = ReadParquet(path)
		case ".csv":
			t, err = readRawFile(path)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, ch := range t.Channels {
			c.Datasets = append(c.Datasets, Dataset{
				ID:      stem + ":" + ch,
				Name:    fmt.Sprintf("%s (%s)", stem, ch),
				Path:    path,
				Channel: ch,
				Format:  strings.TrimPrefix(ext, "."),
			})
		}
	}
	sort.Slice(c.Datasets, func(i, j int) bool { return c.Datasets[i].ID < c.Datasets[j].ID })
	return c, nil
}

func hasSamples(path string) bool {
	s, err := LoadSeriesJSON(path)
	return err == nil && s.Len() > 0
}

// KeepNames carries display names over from a previous catalog for datasets that still exist.
// It returns how many names were kept.
func (c *Catalog) KeepNames(prev *Catalog) int {
	if c == nil || prev == nil {
		return 0
	}
	kept := 0
	for i, d := range c.Datasets {
		if old, ok := prev.Find(d.ID); ok && old.Name != "" && old.Name != d.Name {
			c.Datasets[i].Name = old.Name
			kept++
		}
	}
	return kept
}
