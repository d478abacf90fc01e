package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmagro/lotteryd/internal/config"
	"github.com/dmagro/lotteryd/internal/lotto"
	"github.com/dmagro/lotteryd/internal/rpc"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path, _ = cmd.Root().PersistentFlags().GetString("config")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func buildReader(cfg *config.Config) (*lotto.Reader, error) {
	client := rpc.NewClient(cfg.RPC.Name, cfg.RPC.URL, cfg.RPC.Timeout, cfg.RPC.MaxRetries)
	return lotto.NewReader(client, cfg.Contract.Address)
}
