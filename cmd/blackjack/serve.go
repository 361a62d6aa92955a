package main

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr string `kong:"help='Listen address (overrides config)'"`
	Seed *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := shared.LoadConfig(g.Config, "")
	if err != nil {
		return err
	}
	logger, err := shared.SetupLevelLogger(cfg.Server.LogLevel, g.Debug)
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	if c.Seed != nil {
		logger.Info().Int64("seed", seed).Msg("Using deterministic seed")
	} else {
		logger.Info().Int64("seed", seed).Msg("Using random seed")
	}

	addr := cfg.Server.Address
	if c.Addr != "" {
		addr = c.Addr
	}

	s, err := server.NewServer(logger, server.Config{
		Rules:       cfg.Rules(),
		Seed:        seed,
		IdleTimeout: cfg.IdleTimeout(),
	}, quartz.NewReal())
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
