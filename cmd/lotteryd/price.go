package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/config"
	"github.com/dmagro/lotteryd/internal/output"
	"github.com/dmagro/lotteryd/internal/price"
)

func priceCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Show the current ticket price",
		Long: `Show the current ticket price, in ETH.

The price is read from the local cache when available and fetched from
the contract otherwise.

Example:
  lotteryd price
  lotteryd price --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runPrice(cfg, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal|json")

	return cmd
}

func runPrice(cfg *config.Config, format string) error {
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	cached := true
	if _, err := store.Price(); err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			return err
		}
		cached = false
	}

	reader, err := buildReader(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value, err := price.New(reader, store).Price(ctx)
	if err != nil {
		return err
	}

	if format == "json" {
		output.DisableColors()
		return output.RenderPriceJSON(value, cached)
	}

	output.RenderPriceTerminal(value, cached)
	return nil
}
