// Package kv wraps the optional Redis connection.
//
// Redis is not required to run the service. When configured it provides:
//
//   - Idempotency: Patreon may deliver the same webhook more than once; the signature of a
//     delivery is remembered for a TTL so duplicates are acknowledged without reprocessing.
//   - Locker: a redislock-based mutex so that only one replica runs a full roster sync at a
//     time when several instances share the same upstream credentials.
package kv
