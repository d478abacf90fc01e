package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/lotteryd/internal/config"
	"github.com/dmagro/lotteryd/internal/lotto"
	"github.com/dmagro/lotteryd/internal/output"
)

func ticketsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tickets <player-address>",
		Short: "Show a player's tickets",
		Long: `Show every ticket a player has bought, with the round each ticket
belongs to and its registered/claimed state.

Example:
  lotteryd tickets 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runTickets(cfg, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "terminal", "Output format: terminal|json")

	return cmd
}

func runTickets(cfg *config.Config, player string, format string) error {
	reader, err := buildReader(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	roundIDs, tickets, err := reader.PlayerTickets(ctx, player)
	if err != nil {
		return lotto.ClassifyError(err)
	}

	if format == "json" {
		output.DisableColors()
		return output.RenderTicketsJSON(player, roundIDs, tickets)
	}

	output.RenderTicketsTerminal(player, roundIDs, tickets)
	return nil
}
