// Package entitlement maps Patreon tiers and Ko-Fi grants to scanner quotas.
//
// It is the single place where a subscriber's entitled quota is computed. Both the
// membership store statistics and the reconcile engine call into it, so the two
// can never disagree on how many scanners a supporter is owed.
//
// # Rules
//
//   - A tier id contributes the quota listed in the TierQuotaTable; unknown ids contribute 0.
//   - Only members with the active_patron status are entitled to anything.
//   - Ko-Fi supporters carry a fixed granted quota.
//
// # Usage
//
//	table := entitlement.DefaultTierQuotas()
//	quota := entitlement.MemberQuota(member.Status, member.TierIDs(), table)
package entitlement
