package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peershare/item-sharing-backend/internal/config"
	"github.com/peershare/item-sharing-backend/internal/gateway"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	target, err := url.Parse(cfg.ServerURL)
	if err != nil {
		log.Fatalf("invalid SERVER_URL: %v", err)
	}

	router := gateway.NewRouter(target, gateway.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.GatewayAddr,
		Handler: router,
	}

	go func() {
		log.Printf("gateway listening on %s, forwarding to %s", cfg.GatewayAddr, cfg.ServerURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start gateway: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down gateway...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("gateway forced to shutdown: %v", err)
	}

	log.Println("gateway exited")
}
