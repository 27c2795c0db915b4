package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"battlefun/internal/api/ws"
	"battlefun/internal/auth"
	"battlefun/internal/config"
	"battlefun/internal/room"
)

func NewRouter(rm *room.Manager, tokens *auth.Tokens, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket for game_state pushes
	r.GET("/ws/:player_id", hub.HandleWS)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", HealthHandler(cfg.Debug))
	api.POST("/register", RegisterHandler(rm, tokens))
	api.POST("/deregister", RequirePlayer(tokens), DeregisterHandler(rm))
	api.GET("/config/weights", NewConfigHandler(cfg).GetWeightsHandler)

	// --- GAME ENDPOINTS ---
	game := api.Group("/game", RequirePlayer(tokens))
	game.POST("", PlaceShipsHandler(rm))
	game.GET("/:game_id", GameStateHandler(rm))
	game.POST("/:game_id/turn", ShotHandler(rm))

	// --- DEBUG ---
	api.POST("/debug/turn", RequirePlayer(tokens), TurnFlipHandler(rm, cfg.Debug))

	return r
}
