package entitlement_test

import (
	"testing"

	"patron-manager/core/entitlement"

	"github.com/stretchr/testify/assert"
)

func TestQuotaFor(t *testing.T) {
	table := entitlement.TierQuotaTable{"T1": 2, "T2": 3}

	tests := []struct {
		name    string
		tierIDs []string
		want    int
	}{
		{"Sum", []string{"T1", "T2"}, 5},
		{"Single", []string{"T2"}, 3},
		{"Unknown tier counts as zero", []string{"T1", "nope"}, 2},
		{"Empty", nil, 0},
		{"Duplicate tiers add up", []string{"T1", "T1"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entitlement.QuotaFor(tt.tierIDs, table))
			// Same input, same output.
			assert.Equal(t, tt.want, entitlement.QuotaFor(tt.tierIDs, table))
		})
	}
}

func TestMemberQuota(t *testing.T) {
	table := entitlement.TierQuotaTable{"T1": 2, "T2": 3}

	assert.Equal(t, 5, entitlement.MemberQuota("active_patron", []string{"T1", "T2"}, table))
	assert.Equal(t, 0, entitlement.MemberQuota("declined_patron", []string{"T1", "T2"}, table))
	assert.Equal(t, 0, entitlement.MemberQuota("former_patron", []string{"T1"}, table))
	assert.Equal(t, 0, entitlement.MemberQuota("", []string{"T1"}, table))
}

func TestSupporterQuota(t *testing.T) {
	assert.Equal(t, 3, entitlement.SupporterQuota(3))
	assert.Equal(t, 0, entitlement.SupporterQuota(0))
	assert.Equal(t, 0, entitlement.SupporterQuota(-2))
}

func TestDefaultTierQuotas(t *testing.T) {
	table := entitlement.DefaultTierQuotas()
	assert.Len(t, table, 9)
	assert.Equal(t, 10, table["23779302"])
	assert.Equal(t, 0, table["22667833"])
}
