package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const HealthMessage = "Server is running. Visit /api/campaigns for data."

func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, HealthMessage)
	}
}
