package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"battery-saving-sensor/internal/api/models"
	"battery-saving-sensor/internal/data"
)

// DatasetHandler lists the catalog of replayable series
type DatasetHandler struct {
	catalogPath string
}

func NewDatasetHandler(catalogPath string) *DatasetHandler {
	return &DatasetHandler{catalogPath: catalogPath}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	catalog, err := data.LoadCatalog(h.catalogPath)
	if err != nil {
		// A missing catalog is an empty catalog, not an error
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusOK, gin.H{"datasets": []models.DatasetInfo{}, "count": 0})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CATALOG_LOAD_ERROR",
				Message: fmt.Sprintf("Failed to load datasets: %v", err),
			},
		})
		return
	}

	datasets := make([]models.DatasetInfo, len(catalog.Datasets))
	for i, d := range catalog.Datasets {
		datasets[i] = models.DatasetInfo{
			ID:      d.ID,
			Name:    d.Name,
			Format:  d.Format,
			Channel: d.Channel,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"datasets":   datasets,
		"updated_at": catalog.UpdatedAt,
		"count":      len(datasets),
	})
}
