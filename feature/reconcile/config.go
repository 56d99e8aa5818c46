package reconcile

// Config holds configuration for reconciliation runs.
type Config struct {
	// VerifyConcurrency limits parallel live area fetches.
	VerifyConcurrency int `mapstructure:"verify_concurrency" default:"8"`
	// ArchivePrefix is the object prefix for archived reports.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"reports/"`
}
