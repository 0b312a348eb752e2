package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/api/models"
	"battery-saving-sensor/internal/config"
	"battery-saving-sensor/internal/data"
	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/policy"
	"battery-saving-sensor/internal/sensor"
)

// SimulationHandler handles simulation requests
type SimulationHandler struct {
	sensorDir   string
	catalogPath string
	series      *data.Cache[*model.Series]
	results     *data.Cache[*sensor.Result]
	log         logrus.FieldLogger
}

// SimulationDeps wires the handler's collaborators
type SimulationDeps struct {
	SensorDir   string
	CatalogPath string
	Series      *data.Cache[*model.Series]
	Results     *data.Cache[*sensor.Result]
	Log         logrus.FieldLogger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(deps SimulationDeps) *SimulationHandler {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SimulationHandler{
		sensorDir:   deps.SensorDir,
		catalogPath: deps.CatalogPath,
		series:      deps.Series,
		results:     deps.Results,
		log:         log,
	}
}

// requestError carries the HTTP status and code for a failed request step.
type requestError struct {
	status int
	code   string
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

func (e *requestError) Unwrap() error { return e.err }

func abortWith(c *gin.Context, err error) {
	var rerr *requestError
	if !errors.As(err, &rerr) {
		rerr = &requestError{status: http.StatusInternalServerError, code: "SIMULATION_ERROR", err: err}
	}
	c.JSON(rerr.status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    rerr.code,
			Message: rerr.err.Error(),
		},
	})
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, &requestError{http.StatusBadRequest, "INVALID_REQUEST", err})
		return
	}

	series, err := h.fetchSeries(req.DataSource)
	if err != nil {
		abortWith(c, err)
		return
	}

	cfg, err := h.buildConfig(req.Config)
	if err != nil {
		abortWith(c, err)
		return
	}

	result, pol, err := h.simulate(cfg, series)
	if err != nil {
		abortWith(c, err)
		return
	}

	id := uuid.NewString()
	h.results.Set(id, result)

	c.JSON(http.StatusOK, h.buildResponse(id, cfg, pol, result, req.Options))
}

// GetTicks handles GET /api/v1/simulations/:id/ticks
func (h *SimulationHandler) GetTicks(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.results.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_NOT_FOUND",
				Message: fmt.Sprintf("no stored simulation %q (results expire)", id),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.TicksResponse{ID: id, Ticks: tickRows(result.Ticks)})
}

// CompareSimulations handles POST /api/v1/simulate/compare
func (h *SimulationHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, &requestError{http.StatusBadRequest, "INVALID_REQUEST", err})
		return
	}

	// Fetch data once
	series, err := h.fetchSeries(req.DataSource)
	if err != nil {
		abortWith(c, err)
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		out := models.ComparisonResult{Name: variation.Name}

		cfg, err := h.buildConfig(mergeConfig(req.BaseConfig, variation.Config))
		if err == nil {
			var result *sensor.Result
			var pol policy.Policy
			result, pol, err = h.simulate(cfg, series)
			if err == nil {
				out.Summary = buildSummary(cfg, pol, result)
			}
		}
		if err != nil {
			h.log.WithError(err).WithField("variation", variation.Name).Warn("comparison variation failed")
			out.Error = &models.ErrorDetail{Code: errorCode(err), Message: err.Error()}
		}
		comparison = append(comparison, out)
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

func errorCode(err error) string {
	var rerr *requestError
	if errors.As(err, &rerr) {
		return rerr.code
	}
	return "SIMULATION_ERROR"
}

// Helper methods

func (h *SimulationHandler) simulate(cfg *config.Config, series *model.Series) (*sensor.Result, policy.Policy, error) {
	pol, err := cfg.ResolvePolicy()
	if err != nil {
		return nil, policy.Policy{}, &requestError{http.StatusBadRequest, "INVALID_CONFIG", err}
	}
	sim := sensor.New(cfg.Sensor.ToModelParams(),
		sensor.WithPolicy(pol),
		sensor.WithLogger(h.log.WithField("sensor", cfg.Sensor.Name)),
	)
	result, err := sim.Simulate(series)
	if err != nil {
		if errors.Is(err, model.ErrEmptySeries) {
			return nil, pol, &requestError{http.StatusUnprocessableEntity, "EMPTY_SERIES", err}
		}
		return nil, pol, err
	}
	return result, pol, nil
}

func (h *SimulationHandler) fetchSeries(ds models.DataSourceConfig) (*model.Series, error) {
	switch ds.Type {
	case "inline":
		s, err := model.NewSeries(ds.Samples)
		if err != nil {
			return nil, &requestError{http.StatusBadRequest, "INVALID_SERIES", err}
		}
		return s, nil
	case "dataset":
	default:
		return nil, &requestError{http.StatusBadRequest, "INVALID_REQUEST", fmt.Errorf("unsupported data source type: %s", ds.Type)}
	}

	catalog, err := data.LoadCatalog(h.catalogPath)
	if err != nil {
		return nil, &requestError{http.StatusInternalServerError, "CATALOG_LOAD_ERROR", err}
	}
	dataset, ok := catalog.Find(ds.DatasetID)
	if !ok {
		return nil, &requestError{http.StatusNotFound, "DATASET_NOT_FOUND", fmt.Errorf("unknown dataset %q", ds.DatasetID)}
	}

	key := data.CacheKey(dataset.Path, dataset.Channel)
	if cached, found := h.series.Get(key); found {
		h.log.WithField("dataset", dataset.ID).Debug("series cache hit")
		return cached, nil
	}

	start := time.Now()
	s, err := data.LoadSeries(dataset.Path, dataset.Channel)
	if err != nil {
		if errors.Is(err, model.ErrUnsortedSeries) {
			return nil, &requestError{http.StatusUnprocessableEntity, "INVALID_SERIES", err}
		}
		return nil, &requestError{http.StatusInternalServerError, "DATA_LOAD_ERROR", err}
	}
	h.log.WithFields(logrus.Fields{
		"dataset":  dataset.ID,
		"samples":  s.Len(),
		"duration": time.Since(start),
	}).Info("loaded series")
	h.series.Set(key, s)
	return s, nil
}

func (h *SimulationHandler) buildConfig(req models.SimulationConfig) (*config.Config, error) {
	cfg := &config.Config{
		SensorFile: req.SensorFile,
		Sensor:     req.Sensor,
		Policy: config.PolicyConfig{
			Grow:   req.Policy.Grow,
			Shrink: req.Policy.Shrink,
		},
	}

	// sensor_file is a preset id (e.g. "default"), always looked up in the sensor directory
	if cfg.SensorFile != "" {
		path := filepath.Join(h.sensorDir, filepath.Base(cfg.SensorFile)+".yaml")
		preset, err := config.LoadSensorFile(path)
		if err != nil {
			return nil, &requestError{http.StatusBadRequest, "INVALID_SENSOR_FILE", fmt.Errorf("sensor preset %q: %w", cfg.SensorFile, err)}
		}
		cfg.Sensor = config.MergeSensor(preset, cfg.Sensor)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &requestError{http.StatusBadRequest, "INVALID_CONFIG", err}
	}
	return cfg, nil
}

func mergeConfig(base, override models.SimulationConfig) models.SimulationConfig {
	merged := base
	if override.SensorFile != "" {
		merged.SensorFile = override.SensorFile
	}
	merged.Sensor = config.MergeSensor(base.Sensor, override.Sensor)
	if override.Policy.Grow != "" {
		merged.Policy.Grow = override.Policy.Grow
	}
	if override.Policy.Shrink != "" {
		merged.Policy.Shrink = override.Policy.Shrink
	}
	return merged
}

func (h *SimulationHandler) buildResponse(id string, cfg *config.Config, pol policy.Policy, result *sensor.Result, opts models.SimulateOptions) models.SimulateResponse {
	response := models.SimulateResponse{
		ID:      id,
		Status:  "completed",
		Summary: buildSummary(cfg, pol, result),
	}
	if opts.IncludeSamples {
		response.Measured = result.Measured
		response.Transmitted = result.Transmitted
	}
	if opts.IncludeTicks {
		response.Ticks = tickRows(result.Ticks)
	}
	return response
}

func buildSummary(cfg *config.Config, pol policy.Policy, result *sensor.Result) models.SimulationSummary {
	s := result.Summary()
	return models.SimulationSummary{
		Sensor:             cfg.Sensor.Name,
		Policy:             models.PolicyConfig{Grow: pol.GrowName, Shrink: pol.ShrinkName},
		TotalTicks:         s.Ticks,
		Transmissions:      s.Transmissions,
		SimulationWindow:   models.TimeWindow{Start: s.Start, End: s.End},
		FinalPeriodSeconds: int64(s.FinalPeriod / time.Second),
	}
}

func tickRows(ticks []sensor.Tick) []models.TickRow {
	return lo.Map(ticks, func(t sensor.Tick, _ int) models.TickRow {
		return models.TickRow{
			Index:         t.Index,
			RequestedAt:   t.RequestedAt,
			SampleAt:      t.SampleAt,
			Value:         t.Value,
			Decision:      string(t.Decision),
			PeriodBeforeS: int64(t.PeriodBefore / time.Second),
			PeriodAfterS:  int64(t.PeriodAfter / time.Second),
		}
	})
}
