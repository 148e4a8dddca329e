package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/netplayer/server/config"
	"github.com/automoto/netplayer/server/core"
	"github.com/automoto/netplayer/shared/leveldata"
	"github.com/automoto/netplayer/shared/logger"
	"github.com/automoto/netplayer/shared/protocol"
)

func main() {
	logger.Init()
	log := logger.Component("main")

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.WithError(err).Fatal("Failed to register components")
	}

	level, err := loadLevel(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to load level")
	}

	server := core.NewServer(cfg, level)

	var status *http.Server
	if cfg.HTTPAddr != "" {
		status = &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      server.StatusHandler(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
		go func() {
			log.Infof("Status API listening on %s", cfg.HTTPAddr)
			if err := status.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("Status API stopped")
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutting down server...")
		server.Stop()
		if status != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = status.Shutdown(ctx)
			cancel()
		}
		os.Exit(0)
	}()

	log.Infof("Starting server %q on port %d (tick rate: %d/s, physics: %d/s, model: %s, version: %s)",
		cfg.Name, cfg.Port, cfg.TickRate, cfg.PhysicsRate, cfg.Movement.Model, cfg.Version)
	if err := server.Start(cfg.Port); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}

func loadLevel(cfg config.Config) (*core.ServerLevel, error) {
	if cfg.LevelsDir == "" {
		return core.NewServerLevel("flat", leveldata.FlatLevel(40, 12, cfg.MaxPlayers)), nil
	}
	return core.LoadServerLevel(cfg.LevelsDir, cfg.Level)
}
