// Package patreon wires the Patreon membership roster into the service: the full roster sync,
// the webhook intake and the read-only roster API.
//
// # Sync discipline
//
// A full sync captures its start time before the first page is requested, stamps every fetched
// member with it, writes them through the timestamp-gated store and then purges everything older
// than the start time. A webhook that lands while the sync is running is stamped later and
// survives the purge. If any page fails the store is left as it was.
//
// # HTTP
//
//	POST /webhook               public, signed by Patreon
//	GET  /patreon/members
//	GET  /patreon/members/:id
//	GET  /patreon/stats
//	POST /patreon/sync
package patreon
