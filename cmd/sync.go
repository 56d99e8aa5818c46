package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// syncCmd runs both syncs once and prints the resulting snapshot sizes.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-shot Patreon and Dragonite sync",
	Long: `Fetches the full Patreon roster and the Dragonite area list once and prints
the snapshot statistics. Sync runs are recorded when the history database is enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		syncErr := a.syncAll(cmd.Context())

		ps := a.patreon.Service().Stats()
		ds := a.areas.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Members:   %d (%d active, %d linked to Discord)\n", ps.Members, ps.Active, ps.LinkedDiscord)
		fmt.Fprintf(out, "Quota:     %d scanners, $%s pledged\n", ps.TotalQuota, ps.TotalPledged)
		fmt.Fprintf(out, "Areas:     %d\n", ds.AreaCount)
		fmt.Fprintf(out, "Workers:   %d expected, %d active\n", ds.TotalWorkers, ds.ActiveWorkers)
		return syncErr
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
