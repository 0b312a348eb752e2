package sensor

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"battery-saving-sensor/internal/model"
)

func WriteTicksCSV(path string, ticks []Tick) error {
	header := []string{
		"index",
		"requested_at",
		"sample_at",
		"value",
		"decision",
		"period_before_s",
		"period_after_s",
	}
	rows := make([][]string, 0, len(ticks))
	for _, t := range ticks {
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			fmtTime(t.RequestedAt),
			fmtTime(t.SampleAt),
			fmtFloat(t.Value),
			string(t.Decision),
			fmtSeconds(t.PeriodBefore),
			fmtSeconds(t.PeriodAfter),
		})
	}
	return writeCSV(path, header, rows)
}

func WriteSamplesCSV(path string, samples []model.Sample) error {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{fmtTime(s.Timestamp), fmtFloat(s.Value)})
	}
	return writeCSV(path, []string{"timestamp", "value"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// fmtSeconds keeps fractional seconds; whole seconds print without a decimal point.
func fmtSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
