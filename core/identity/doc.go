// Package identity extracts linking keys from free-text Dragonite area names.
//
// Area names are the only surface that ties a provisioned area back to a supporter, so
// operators embed identifiers in them by convention:
//
//   - "12345678 north"            leading Patreon user id
//   - "kofi 884905804757622835"   Ko-Fi marker followed by a Discord id
//   - "city 884905804757622835"   bare Discord id (17-20 digits)
//   - "3f2b...-...-...-... park"  legacy UUID token resolved through the alias table
//
// Every function is pure and operates on a single name. Priority between the extractors
// is decided by the reconcile engine, not here.
package identity
