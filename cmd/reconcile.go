package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"patron-manager/feature/reconcile"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileJSON    bool
	reconcileVerify  bool
	reconcileArchive bool
)

// reconcileCmd syncs both sources and prints one reconciliation report.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile subscriber quotas against Dragonite areas",
	Long: `Runs a Patreon and Dragonite sync, then classifies every area against the
membership and supporter lists.

Examples:
  # Table summary
  reconcile

  # Refresh area names from Dragonite first and archive the report
  reconcile --verify --archive

  # Full report as JSON
  reconcile --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.syncAll(ctx); err != nil {
			a.logger.Warn("Reconciling over a partial snapshot", zap.Error(err))
		}

		report, err := a.reconcile.Reconcile(ctx, reconcile.Options{Verify: reconcileVerify, Archive: reconcileArchive})
		if report == nil {
			return err
		}
		if err != nil {
			a.logger.Warn("Report archive failed", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		if reconcileJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		return printReport(out, report)
	},
}

func printReport(w io.Writer, r *reconcile.Report) error {
	s := r.Summary
	summary := tablewriter.NewTable(w)
	summary.Header("Bucket", "Count")
	rows := [][]string{
		{"areas", strconv.Itoa(s.Areas)},
		{"completed", strconv.Itoa(s.Completed)},
		{"matches", strconv.Itoa(s.Matches)},
		{"mismatches", strconv.Itoa(s.Mismatches)},
		{"noPatreonMatch", strconv.Itoa(s.NoPatreonMatch)},
		{"noDiscordIdFound", strconv.Itoa(s.NoDiscordIDFound)},
		{"noDragoniteMatch", strconv.Itoa(s.NoDragoniteMatch)},
		{"possibleMatches", strconv.Itoa(s.PossibleMatches)},
		{"renamed", strconv.Itoa(s.Renamed)},
	}
	for _, row := range rows {
		if err := summary.Append(row); err != nil {
			return err
		}
	}
	if err := summary.Render(); err != nil {
		return err
	}

	mismatched := make([]reconcile.Match, 0)
	for _, list := range [][]reconcile.Match{r.Completed, r.Matches} {
		for _, m := range list {
			if m.IsMismatch {
				mismatched = append(mismatched, m)
			}
		}
	}
	if len(mismatched) > 0 {
		fmt.Fprintln(w, "\nQuota mismatches")
		t := tablewriter.NewTable(w)
		t.Header("Subject", "Rule", "Areas", "Expected", "Allowed")
		for _, m := range mismatched {
			ids := make([]string, 0, len(m.Areas))
			for _, area := range m.Areas {
				ids = append(ids, strconv.Itoa(area.ID))
			}
			if err := t.Append([]string{m.Subject.Name, string(m.Rule), strings.Join(ids, ","), strconv.Itoa(m.TotalExpected), strconv.Itoa(m.AllowedQuota)}); err != nil {
				return err
			}
		}
		if err := t.Render(); err != nil {
			return err
		}
	}

	if len(r.NoDragoniteMatch) > 0 {
		fmt.Fprintln(w, "\nEntitled without areas")
		t := tablewriter.NewTable(w)
		t.Header("Subject", "Kind", "Discord", "Quota")
		for _, sub := range r.NoDragoniteMatch {
			if err := t.Append([]string{sub.Name, string(sub.Kind), sub.DiscordID, strconv.Itoa(sub.Quota)}); err != nil {
				return err
			}
		}
		if err := t.Render(); err != nil {
			return err
		}
	}

	if r.ArchiveKey != "" {
		fmt.Fprintf(w, "\nArchived as %s\n", r.ArchiveKey)
	}
	return nil
}

func init() {
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "Print the full report as JSON")
	reconcileCmd.Flags().BoolVar(&reconcileVerify, "verify", false, "Refresh enabled area names from Dragonite before classifying")
	reconcileCmd.Flags().BoolVar(&reconcileArchive, "archive", false, "Archive the report to object storage")
	RootCmd.AddCommand(reconcileCmd)
}
