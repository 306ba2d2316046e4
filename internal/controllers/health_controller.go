package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct{}

func (hc *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

func (hc *HealthController) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
