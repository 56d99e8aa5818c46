package entitlement

// StatusActive is the only Patreon status that counts toward an entitlement.
const StatusActive = "active_patron"

// TierQuotaTable maps a Patreon tier id to the number of scanners it grants.
type TierQuotaTable map[string]int

// DefaultTierQuotas returns the tier table used when no override is configured.
func DefaultTierQuotas() TierQuotaTable {
	return TierQuotaTable{
		"22667833": 0,
		"22667844": 1,
		"23548893": 1,
		"23548931": 2,
		"23548958": 3,
		"23548990": 4,
		"23549000": 5,
		"23779295": 7,
		"23779302": 10,
	}
}

// QuotaFor sums the quota of every tier id. Unknown tier ids count as 0.
func QuotaFor(tierIDs []string, table TierQuotaTable) int {
	total := 0
	for _, id := range tierIDs {
		total += table[id]
	}
	return total
}

// MemberQuota returns the quota of a Patreon member, which is zero unless the
// member is an active patron.
func MemberQuota(status string, tierIDs []string, table TierQuotaTable) int {
	if status != StatusActive {
		return 0
	}
	return QuotaFor(tierIDs, table)
}

// SupporterQuota returns the quota of a manually curated supporter.
func SupporterQuota(granted int) int {
	if granted < 0 {
		return 0
	}
	return granted
}
