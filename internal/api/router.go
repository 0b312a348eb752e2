package api

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/api/handlers"
	"battery-saving-sensor/internal/api/middleware"
	"battery-saving-sensor/internal/data"
	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/sensor"
)

// Options configures the HTTP router.
type Options struct {
	SensorDir   string
	CatalogPath string
	StaticDir   string // optional SPA bundle
	Series      *data.Cache[*model.Series]
	Results     *data.Cache[*sensor.Result]
	Log         logrus.FieldLogger
}

// NewRouter wires middleware, handlers and routes.
// A nil Log falls back to the logrus standard logger.
func NewRouter(opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.ErrorHandler(opts.Log))

	simulationHandler := handlers.NewSimulationHandler(handlers.SimulationDeps{
		SensorDir:   opts.SensorDir,
		CatalogPath: opts.CatalogPath,
		Series:      opts.Series,
		Results:     opts.Results,
		Log:         opts.Log,
	})
	sensorHandler := handlers.NewSensorHandler(opts.SensorDir, opts.Log)
	datasetHandler := handlers.NewDatasetHandler(opts.CatalogPath)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Diagnostic endpoint to check the preset directory
	router.GET("/debug/sensor-dir", func(c *gin.Context) {
		dir := sensorHandler.SensorDir()
		info, statErr := os.Stat(dir)

		entries := []string{}
		if dirEntries, err := os.ReadDir(dir); err == nil {
			for _, e := range dirEntries {
				entries = append(entries, e.Name())
			}
		}

		statError := ""
		if statErr != nil {
			statError = statErr.Error()
		}
		c.JSON(http.StatusOK, gin.H{
			"sensor_dir":        dir,
			"sensor_dir_exists": statErr == nil,
			"sensor_dir_is_dir": info != nil && info.IsDir(),
			"stat_error":        statError,
			"entries":           entries,
			"entry_count":       len(entries),
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulationHandler.RunSimulation)
		api.POST("/simulate/compare", simulationHandler.CompareSimulations)
		api.GET("/simulations/:id/ticks", simulationHandler.GetTicks)

		api.GET("/sensors", sensorHandler.ListSensors)
		api.GET("/policies", handlers.ListPolicies)
		api.GET("/datasets", datasetHandler.ListDatasets)
	}

	if opts.StaticDir != "" {
		if _, err := os.Stat(opts.StaticDir); err == nil {
			router.Static("/assets", opts.StaticDir+"/assets")
			// Serve index.html for all non-API routes (SPA routing)
			router.NoRoute(func(c *gin.Context) {
				if strings.HasPrefix(c.Request.URL.Path, "/api") {
					c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
					return
				}
				c.File(opts.StaticDir + "/index.html")
			})
			opts.Log.WithField("dir", opts.StaticDir).Info("serving static files")
		} else {
			opts.Log.WithField("dir", opts.StaticDir).Info("static directory not found, skipping static file serving")
		}
	}

	return router
}
