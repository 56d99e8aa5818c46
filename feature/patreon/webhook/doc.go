// Package webhook verifies and applies Patreon member webhooks.
//
// Create and update events upsert the member stamped with the receive time. Delete events remove
// the member unconditionally. Unknown events are logged and ignored. When a Deduper is supplied,
// repeated deliveries carrying the same signature are applied once.
package webhook
