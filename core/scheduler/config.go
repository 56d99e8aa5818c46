package scheduler

// Config holds configuration for periodic roster syncs.
type Config struct {
	// PatreonSchedule is the cron spec for the Patreon roster sync. Empty disables it.
	PatreonSchedule string `mapstructure:"patreon_schedule" default:"@every 15m"`
	// DragoniteSchedule is the cron spec for the Dragonite roster sync. Empty disables it.
	DragoniteSchedule string `mapstructure:"dragonite_schedule" default:"@every 5m"`
	// RunOnStart triggers every scheduled job once when the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"true"`
}
