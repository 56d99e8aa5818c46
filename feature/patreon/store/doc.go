// Package store holds the authoritative in-process Patreon membership snapshot.
//
// # Ordering
//
// Every write is gated on the record's LastUpdated timestamp: an incoming record replaces the
// stored one only when it is at least as recent, so webhook deliveries and full syncs can
// interleave in any order and converge on the newest data.
//
// # Purging
//
// After a full sync the caller purges with the timestamp captured before the fetch started.
// Records that were not part of the new roster are dropped while records written later by a
// webhook survive. Remove bypasses the timestamp gate.
package store
