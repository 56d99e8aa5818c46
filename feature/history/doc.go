// Package history keeps an audit trail of roster syncs in the optional SQL database.
//
// # Storage
//
// Runs are stored with GORM in the sync_runs table, which is auto-migrated when the feature
// loads. Both MySQL and sqlite work. Without a database the repository is a no-op, so the sync
// services can always call Record.
//
// # HTTP
//
//	GET /history?limit=20&source=patreon
package history
