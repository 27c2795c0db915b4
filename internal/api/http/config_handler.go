package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"battlefun/internal/config"
)

type ConfigHandler struct {
	cfg config.Config
}

func NewConfigHandler(cfg config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// GetWeightsHandler returns the weights the bot uses to pick its shots.
// @Summary Get bot heuristic weights
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config/weights [get]
func (h *ConfigHandler) GetWeightsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"weights": h.cfg.Weights,
	})
}
