package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	httpapi "battlefun/internal/api/http"
	"battlefun/internal/api/ws"
	"battlefun/internal/auth"
	"battlefun/internal/config"
	"battlefun/internal/room"
	"battlefun/internal/store"

	// swagger packages
	_ "battlefun/docs"
)

// @title Battlefun API
// @version 1.0
// @description REST and WebSocket API for two-player Battleship (Go + Gin)
// @contact.name Backend Team
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("%v", err)
	}

	tokens, err := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL, nil)
	if err != nil {
		config.Exitf("auth: %v", err)
	}
	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, time.Now().UnixNano(), log.Default())
	hub := ws.NewHub(rm, tokens, cfg.AllowedOrigin, log.Default())
	rm.SetHub(hub)
	r := httpapi.NewRouter(rm, tokens, hub, cfg)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	if cfg.Debug {
		log.Printf("debug mode: turn flip endpoint enabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
