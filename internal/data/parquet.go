package data

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

// parquetRow is the on-disk row shape; timestamps are stored as UTC Unix nanoseconds.
type parquetRow struct {
	TimestampNS int64   `parquet:"timestamp_ns"`
	Channel     string  `parquet:"channel,dict"`
	Value       float64 `parquet:"value"`
}

// WriteParquet persists t so later runs can skip raw ingestion.
func WriteParquet(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	rows := make([]parquetRow, len(t.Records))
	for i, r := range t.Records {
		rows[i] = parquetRow{
			TimestampNS: r.Timestamp.UnixNano(),
			Channel:     r.Channel,
			Value:       r.Value,
		}
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}

func ReadParquet(path string) (*Table, error) {
	rows, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	t := &Table{Records: make([]Record, len(rows))}
	for i, r := range rows {
		t.addChannel(r.Channel)
		t.Records[i] = Record{
			Timestamp: time.Unix(0, r.TimestampNS).UTC(),
			Channel:   r.Channel,
			Value:     r.Value,
		}
	}
	return t, nil
}
