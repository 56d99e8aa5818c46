// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client (AWS S3 and self-hosted MinIO). The service uses a bucket for
// two things: the static supporter/alias/tier document can be loaded from it at start-up,
// and reconciliation reports can be archived into it as JSON.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so storage interactions can be mocked
// in unit tests (see core/storage/mocks).
//
// # Helpers
//
//   - ReadObject: downloads a whole object.
//   - WriteObject: uploads a byte slice with a content type.
//   - ListKeys: lists object keys under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, "patron-manager", "static/supporters.yaml")
package storage
