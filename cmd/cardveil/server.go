package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/cardveil/holdem/cmd/cardveil/shared"
	"github.com/cardveil/holdem/internal/server"
)

// ServerCmd runs the table service.
type ServerCmd struct {
	Config   string `short:"c" help:"Path to HCL config file"`
	Address  string `help:"Listen address (overrides config)"`
	Port     int    `help:"Listen port (overrides config)"`
	LogLevel string `default:"info" help:"Log level (debug, info, warn, error)"`
}

func (c *ServerCmd) Run() error {
	cfg := server.DefaultConfig()
	if c.Config != "" {
		loaded, err := server.LoadConfig(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	return srv.Run(ctx)
}
