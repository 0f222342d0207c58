package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aquafund/internal/db"
)

type HealthHandler struct {
	DB *db.DB
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
}

// @Summary Liveness and ledger-store probe
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) health(c *gin.Context) {
	if err := db.Ping(h.DB); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":       "degraded",
			"ledger_store": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"ledger_store": "reachable",
	})
}
