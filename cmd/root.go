package cmd

import (
	"fmt"
	"os"

	"patron-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the patron-manager entry command. Subcommands register themselves in init.
var RootCmd = &cobra.Command{
	Use:   "patron-manager",
	Short: "Patreon and Ko-Fi scanner quota reconciliation",
	Long: `Patron Manager keeps a live view of Patreon memberships and Dragonite areas
and reconciles each subscriber's scanner quota against what is deployed.

Run "start" for the webhook receiver and admin API, or "sync" and "reconcile"
for one-shot runs from a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the selected command and exits non-zero when it fails.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	reportFailure(err)
	os.Exit(1)
}

// reportFailure prints err through a console logger. The configured logger is not used
// because configuration loading may be what failed.
func reportFailure(err error) {
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}
