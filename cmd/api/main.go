package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"battery-saving-sensor/internal/api"
	"battery-saving-sensor/internal/api/handlers"
	"battery-saving-sensor/internal/config"
	"battery-saving-sensor/internal/data"
	"battery-saving-sensor/internal/model"
	"battery-saving-sensor/internal/sensor"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			log.Fatalf("Invalid LOG_LEVEL %q: %v", lvl, err)
		}
		log.SetLevel(level)
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cacheTTL := time.Hour
	if raw := os.Getenv("SERIES_CACHE_TTL"); raw != "" {
		d, err := config.ParseDuration(raw)
		if err != nil {
			log.Fatalf("SERIES_CACHE_TTL: %v", err)
		}
		cacheTTL = d
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sensorDir := handlers.ResolveSensorDir()
	if info, err := os.Stat(sensorDir); err != nil || !info.IsDir() {
		log.WithError(err).WithField("dir", sensorDir).Warn("sensor preset directory not found")
	}

	router := api.NewRouter(api.Options{
		SensorDir:   sensorDir,
		CatalogPath: data.DefaultCatalogPath(),
		StaticDir:   staticDir,
		Series:      data.NewCache[*model.Series](ctx, cacheTTL),
		Results:     data.NewCache[*sensor.Result](ctx, cacheTTL),
		Log:         log,
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.WithField("addr", addr).Info("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
