package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/lotteryd/internal/cache"
	"github.com/dmagro/lotteryd/internal/config"
	"github.com/dmagro/lotteryd/internal/lotto"
	"github.com/dmagro/lotteryd/internal/output"
)

func roundsCmd() *cobra.Command {
	var (
		format  string
		current bool
	)

	cmd := &cobra.Command{
		Use:   "rounds",
		Short: "Show the cached settled round history",
		Long: `Show the settled rounds currently in the local cache, newest first.

The cache is filled by the serve command as rounds settle on chain, so
an empty result just means no rounds have been ingested yet. With
--current the in-progress round is read from the contract instead.

Example:
  lotteryd rounds
  lotteryd rounds --current
  lotteryd rounds --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if current {
				return runCurrentRound(cfg, format)
			}
			return runRounds(cfg, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal|json")
	cmd.Flags().BoolVar(&current, "current", false, "Show the in-progress round from the contract")

	return cmd
}

func runCurrentRound(cfg *config.Config, format string) error {
	reader, err := buildReader(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	round, err := reader.CurrentRound(ctx)
	if err != nil {
		return lotto.ClassifyError(err)
	}
	status := lotto.StatusAt(round, time.Now())

	if format == "json" {
		output.DisableColors()
		return output.RenderCurrentRoundJSON(round, status)
	}

	output.RenderCurrentRoundTerminal(round, status)
	return nil
}

func runRounds(cfg *config.Config, format string) error {
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	rounds, err := store.Rounds()
	if err != nil {
		return err
	}

	if format == "json" {
		output.DisableColors()
		return output.RenderRoundsJSON(rounds)
	}

	output.RenderRoundsTerminal(rounds)
	return nil
}
