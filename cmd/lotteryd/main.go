package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmagro/lotteryd/internal/config"
)

func main() {
	config.LoadEnv()

	root := &cobra.Command{
		Use:   "lotteryd",
		Short: "Lottery settlement cache daemon and CLI",
		Long: `lotteryd watches a lottery contract for settled rounds, caches their
results locally, and serves them over HTTP. It also provides one-shot
commands to inspect the ticket price, the cached round history, and a
player's tickets.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "config/lotteryd.yaml", "Config file path")

	root.AddCommand(serveCmd())
	root.AddCommand(priceCmd())
	root.AddCommand(roundsCmd())
	root.AddCommand(ticketsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
