package kv

// Config holds configuration for the optional Redis connection.
type Config struct {
	// Addr is the host:port of the Redis server. Empty disables Redis.
	Addr string `mapstructure:"addr" default:""`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis database index.
	DB int `mapstructure:"db" default:"0"`
	// IdempotencyTTLSeconds is how long a webhook delivery is remembered.
	IdempotencyTTLSeconds int `mapstructure:"idempotency_ttl_seconds" default:"86400"`
	// LockTTLSeconds bounds how long a sync lock is held before it expires.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"300"`
}

// Enabled reports whether Redis is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}
