package cmd

import (
	"fmt"
	"os"

	"vessel-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "vessel-manager",
	Short: "Vessel Data Reconciliation Service",
	Long: `Vessel Manager enriches stored vessel records with data from external
sources (MarineTraffic, BOAT International and others), detects conflicts
and writes only the changes you approve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// CLI errors go through the console logger so they read like the rest of the output.
		// Debug level selects the development preset, which prints ISO8601 timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
