// Package client is the Patreon creator API client. It pages through the campaign members
// endpoint and resolves the included users and tiers into member records.
//
// # Identity fields
//
// The Discord id comes from the user's social connections. The numeric Patreon id is taken
// from the ?u= parameter of the user's profile URL and falls back to the user resource id.
// Tiers without an included title are named "Tier <id>".
package client
