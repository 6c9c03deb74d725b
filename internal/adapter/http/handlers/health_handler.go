package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	response "greenpro_billing/internal/adapter/http/dto/response"
)

// Health godoc
// @Summary  Liveness check
// @Tags     health
// @Produce  json
// @Success  200  {object}  response.HealthResponse
// @Router   /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
