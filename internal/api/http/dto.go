package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"battlefun/internal/apperrors"
	"battlefun/internal/protocol"
)

const playerKey = "player_id"

type HealthResponse struct {
	Status string `json:"status"`
	Debug  bool   `json:"debug"`
}

type ShotResponse struct {
	Success bool `json:"success"`
	Cell    int  `json:"cell"`
	Hit     bool `json:"hit"`
}

// respondError aborts the request with the status mapped from the error code.
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	msg := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), protocol.ErrorResponse{Code: string(code), Message: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, protocol.ErrorResponse{Code: "BAD_REQUEST", Message: msg})
}

func currentPlayer(c *gin.Context) string {
	return c.GetString(playerKey)
}
