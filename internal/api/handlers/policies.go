package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"battery-saving-sensor/internal/api/models"
	"battery-saving-sensor/internal/policy"
)

// ListPolicies handles GET /api/v1/policies
func ListPolicies(c *gin.Context) {
	descriptors := policy.Descriptors()
	policies := make([]models.PolicyInfo, len(descriptors))
	for i, d := range descriptors {
		policies[i] = models.PolicyInfo{Name: d.Name, Kind: d.Kind, Description: d.Description}
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}
