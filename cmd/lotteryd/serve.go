package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/config"
	"github.com/dmagro/lotteryd/internal/ingest"
	"github.com/dmagro/lotteryd/internal/price"
	"github.com/dmagro/lotteryd/internal/server"
)

var log = logger.GetOrCreate("lotteryd")

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the settlement ingestor and HTTP API",
		Long: `Run the lottery daemon: poll the chain for settled rounds, keep the
local cache current, and serve cached data over HTTP.

Example:
  lotteryd serve --config config/lotteryd.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	return cmd
}

func runServe(cfg *config.Config) error {
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	reader, err := buildReader(cfg)
	if err != nil {
		return err
	}

	prices := price.New(reader, store)
	ingestor := ingest.New(reader, store, cfg.Contract.DeployBlock, cfg.Ingest.PollInterval)
	srv := server.New(cfg.Server.Listen, store, prices)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	log.Info("starting",
		"rpc", cfg.RPC.Name,
		"contract", cfg.Contract.Address,
		"listen", cfg.Server.Listen,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := ingestor.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return srv.ListenAndServe()
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
