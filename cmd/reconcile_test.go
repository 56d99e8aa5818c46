package cmd

import (
	"bytes"
	"testing"

	"patron-manager/feature/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReport(t *testing.T) {
	report := &reconcile.Report{
		Summary: reconcile.Summary{Areas: 3, Matches: 1, Mismatches: 1, NoDragoniteMatch: 1},
		Matches: []reconcile.Match{{
			Key:           "111111111111111111",
			Rule:          reconcile.RuleDiscordID,
			Subject:       reconcile.Subject{Name: "Alice", Quota: 2},
			Areas:         []reconcile.AreaRef{{ID: 4}, {ID: 9}},
			TotalExpected: 3,
			AllowedQuota:  2,
			IsMismatch:    true,
		}},
		NoDragoniteMatch: []reconcile.Subject{{Kind: reconcile.KindSupporter, Name: "LonelyDonor", DiscordID: "666", Quota: 1}},
		ArchiveKey:       "reports/1700000000.json",
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "noDragoniteMatch")
	assert.Contains(t, out, "Quota mismatches")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "4,9")
	assert.Contains(t, out, "LonelyDonor")
	assert.Contains(t, out, "Archived as reports/1700000000.json")
}

func TestPrintReportOmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &reconcile.Report{}))

	out := buf.String()
	assert.Contains(t, out, "completed")
	assert.NotContains(t, out, "Quota mismatches")
	assert.NotContains(t, out, "Entitled without areas")
	assert.NotContains(t, out, "Archived as")
}
