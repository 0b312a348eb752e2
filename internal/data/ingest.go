package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/model"
)

// Record is one cell of a raw sensor log: a channel reading at a timestamp.
type Record struct {
	Timestamp time.Time
	Channel   string
	Value     float64
}

// Table is a long-format collection of raw readings.
// Channels lists channel names in order of first appearance.
type Table struct {
	Channels []string
	Records  []Record
}

func (t *Table) addChannel(name string) {
	if !t.hasChannel(name) {
		t.Channels = append(t.Channels, name)
	}
}

// Series extracts one channel as a model.Series, preserving record order.
// An empty channel name is accepted when the table holds exactly one channel.
func (t *Table) Series(channel string) (*model.Series, error) {
	if channel == "" {
		if len(t.Channels) != 1 {
			return nil, fmt.Errorf("channel is required (table has %d channels: %s)",
				len(t.Channels), strings.Join(t.Channels, ", "))
		}
		channel = t.Channels[0]
	}
	if !t.hasChannel(channel) {
		return nil, fmt.Errorf("unknown channel %q", channel)
	}
	samples := make([]model.Sample, 0, len(t.Records)/len(t.Channels))
	for _, r := range t.Records {
		if r.Channel == channel {
			samples = append(samples, model.Sample{Timestamp: r.Timestamp, Value: r.Value})
		}
	}
	s, err := model.NewSeries(samples)
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", channel, err)
	}
	return s, nil
}

func (t *Table) hasChannel(name string) bool {
	for _, c := range t.Channels {
		if c == name {
			return true
		}
	}
	return false
}

var orderKey = regexp.MustCompile(`\d+`)

// RawFiles lists the *.csv files in dir ordered by the first integer embedded in their names
// (e.g. "log_2.csv" before "log_10.csv").
func RawFiles(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	keys := make(map[string]int, len(paths))
	for _, p := range paths {
		m := orderKey.FindString(filepath.Base(p))
		if m == "" {
			return nil, fmt.Errorf("raw file %s has no numeric ordering key", p)
		}
		k, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("raw file %s: %w", p, err)
		}
		keys[p] = k
	}
	sort.SliceStable(paths, func(i, j int) bool {
		if keys[paths[i]] != keys[paths[j]] {
			return keys[paths[i]] < keys[paths[j]]
		}
		return paths[i] < paths[j]
	})
	return paths, nil
}

// ReadRawCSV parses a raw sensor log: a header row, timestamps in the first column and one
// numeric channel per remaining column. Blank and NaN cells are skipped.
func ReadRawCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("raw csv has no header")
		}
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("raw csv needs a timestamp column and at least one channel, got %d columns", len(header))
	}

	t := &Table{}
	for _, name := range header[1:] {
		t.addChannel(strings.TrimSpace(name))
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, err := parseTimestamp(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for i := 1; i < len(row) && i < len(header); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
			if math.IsNaN(v) {
				continue
			}
			t.Records = append(t.Records, Record{
				Timestamp: ts,
				Channel:   strings.TrimSpace(header[i]),
				Value:     v,
			})
		}
	}
	return t, nil
}

// parseTimestamp accepts ISO 8601, including the "2006-01-02 15:04:05" form common in logger exports.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	ts, err := iso8601.ParseString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return ts, nil
}

func readRawFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadRawCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Ingest concatenates every raw CSV in dir, in RawFiles order, into one table.
func Ingest(dir string, log logrus.FieldLogger) (*Table, error) {
	paths, err := RawFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no raw csv files in %s", dir)
	}

	out := &Table{}
	for _, p := range paths {
		t, err := readRawFile(p)
		if err != nil {
			return nil, err
		}
		for _, c := range t.Channels {
			out.addChannel(c)
		}
		out.Records = append(out.Records, t.Records...)
		log.WithFields(logrus.Fields{"file": filepath.Base(p), "records": len(t.Records)}).Debug("ingested raw file")
	}
	log.WithFields(logrus.Fields{
		"files":    len(paths),
		"records":  len(out.Records),
		"channels": out.Channels,
	}).Info("ingest complete")
	return out, nil
}
