package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"battlefun/internal/apperrors"
	"battlefun/internal/auth"
	"battlefun/internal/protocol"
	"battlefun/internal/room"
)

// RequirePlayer resolves the bearer token into the request's player id.
func RequirePlayer(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondError(c, apperrors.New(apperrors.CodeAuthenticationFailed, "missing bearer token"))
			return
		}
		playerID, err := tokens.Verify(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(playerKey, playerID)
		c.Next()
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func HealthHandler(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Debug: debug})
	}
}

// @Summary Register a player
// @Description Creates a player identity and returns its bearer token. The name is optional.
// @Tags Player
// @Accept json
// @Produce json
// @Param request body protocol.RegisterRequest false "Player name"
// @Success 200 {object} protocol.RegisterResponse
// @Router /api/register [post]
func RegisterHandler(rm *room.Manager, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req protocol.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, "invalid body")
			return
		}
		p := rm.Register(req.Name)
		token, err := tokens.Issue(p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, protocol.RegisterResponse{PlayerID: p.ID, Name: p.Name, Token: token})
	}
}

// @Summary Deregister a player
// @Description Forgets the calling player and any room it left open. Rejected while a game is in progress.
// @Tags Player
// @Produce json
// @Security BearerAuth
// @Success 200 {object} protocol.GenericResponse
// @Failure 404 {object} protocol.ErrorResponse
// @Failure 409 {object} protocol.ErrorResponse
// @Router /api/deregister [post]
func DeregisterHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := rm.Deregister(currentPlayer(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, protocol.GenericResponse{Success: true})
	}
}

// @Summary Submit a fleet
// @Description Places the player's ships. Opens a room when room_code is empty, joins it otherwise, or starts a bot match.
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body protocol.PlacementRequest true "Fleet layout"
// @Success 200 {object} protocol.PlacementResponse
// @Failure 400 {object} protocol.ErrorResponse
// @Failure 404 {object} protocol.ErrorResponse
// @Failure 409 {object} protocol.ErrorResponse
// @Router /api/game [post]
func PlaceShipsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req protocol.PlacementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "ships required")
			return
		}
		res, err := rm.Play(currentPlayer(c), req.Ships, req.RoomCode, req.Bot)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, protocol.PlacementResponse{Success: true, RoomCode: res.RoomCode, GameID: res.GameID})
	}
}

// @Summary Get game state
// @Description Returns the game as the calling player sees it.
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param game_id path string true "Game ID"
// @Success 200 {object} state.GameState
// @Failure 404 {object} protocol.ErrorResponse
// @Router /api/game/{game_id} [get]
func GameStateHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := rm.View(c.Param("game_id"), currentPlayer(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

// @Summary Fire a shot
// @Tags Game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param game_id path string true "Game ID"
// @Param request body protocol.ShotRequest true "Target cell"
// @Success 200 {object} ShotResponse
// @Failure 400 {object} protocol.ErrorResponse
// @Failure 409 {object} protocol.ErrorResponse
// @Router /api/game/{game_id}/turn [post]
func ShotHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req protocol.ShotRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Cell == nil {
			badRequest(c, "cell required")
			return
		}
		shot, err := rm.Shoot(c.Param("game_id"), currentPlayer(c), *req.Cell)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ShotResponse{Success: true, Cell: shot.Cell, Hit: shot.Hit})
	}
}

// @Summary Force the turn (debug)
// @Description Development aid. Only served when BATTLEFUN_DEBUG is set.
// @Tags Debug
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body protocol.TurnFlipRequest true "Turn flag"
// @Success 200 {object} protocol.GenericResponse
// @Failure 403 {object} protocol.ErrorResponse
// @Router /api/debug/turn [post]
func TurnFlipHandler(rm *room.Manager, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !debug {
			respondError(c, apperrors.ErrDebugDisabled)
			return
		}
		var req protocol.TurnFlipRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.GameState.YourTurn == nil {
			badRequest(c, "game_state.your_turn required")
			return
		}
		if err := rm.FlipTurn(currentPlayer(c), *req.GameState.YourTurn); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, protocol.GenericResponse{Success: true})
	}
}
