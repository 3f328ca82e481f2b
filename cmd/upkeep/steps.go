package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upkeep-sh/upkeep/internal/domain/config"
	"github.com/upkeep-sh/upkeep/internal/domain/registry"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the steps a run would walk through, in order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewLoader().Load(cfgFile)
		if err != nil {
			return err
		}

		for _, name := range registry.Names(cfg) {
			if cfg.Disabled(name) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (disabled)\n", name)
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
