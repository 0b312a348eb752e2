package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/api/models"
	"battery-saving-sensor/internal/config"
)

// SensorHandler handles sensor preset requests
type SensorHandler struct {
	sensorDir string
	log       logrus.FieldLogger
}

// ResolveSensorDir returns SENSOR_DIR, or examples/sensors under the working directory, as an absolute path.
func ResolveSensorDir() string {
	dir := os.Getenv("SENSOR_DIR")
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, "examples", "sensors")
		} else {
			dir = "./examples/sensors"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// NewSensorHandler creates a new sensor handler
func NewSensorHandler(sensorDir string, log logrus.FieldLogger) *SensorHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithField("dir", sensorDir).Info("using sensor preset directory")
	return &SensorHandler{sensorDir: sensorDir, log: log}
}

// SensorDir returns the preset directory path (for debugging)
func (h *SensorHandler) SensorDir() string {
	return h.sensorDir
}

// ListSensors handles GET /api/v1/sensors
func (h *SensorHandler) ListSensors(c *gin.Context) {
	sensors := []models.SensorInfo{}

	entries, err := os.ReadDir(h.sensorDir)
	if err != nil {
		h.log.WithError(err).WithField("dir", h.sensorDir).Warn("failed to read sensor directory")
		c.JSON(http.StatusOK, gin.H{"sensors": sensors})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.sensorDir, entry.Name())
		info, err := loadSensorInfo(path, entry.Name())
		if err != nil {
			h.log.WithError(err).WithField("file", path).Warn("skipping invalid sensor preset")
			continue
		}
		sensors = append(sensors, *info)
	}

	h.log.WithField("count", len(sensors)).Debug("listed sensor presets")
	c.JSON(http.StatusOK, gin.H{"sensors": sensors})
}

func loadSensorInfo(path, filename string) (*models.SensorInfo, error) {
	sc, err := config.LoadSensorFile(path)
	if err != nil {
		return nil, err
	}

	// "default.yaml" -> "default"; this is also the sensor_file id accepted by /simulate
	id := strings.TrimSuffix(filename, ".yaml")

	name := sc.Name
	if name == "" {
		name = id
	}

	p := sc.ToModelParams()
	return &models.SensorInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.SensorSpecs{
			InitialPeriod:   p.InitialPeriod.String(),
			MinPeriod:       p.MinPeriod.String(),
			MaxPeriod:       p.MaxPeriod.String(),
			PeriodIncrement: p.PeriodIncrement.String(),
			Deadband:        p.Deadband,
		},
	}, nil
}
