package client

// Config holds configuration for the Dragonite admin API.
type Config struct {
	// BaseURL is the root of the Dragonite API, without the /api suffix.
	BaseURL string `mapstructure:"base_url" default:""`
	// Secret is sent as the authorized cookie.
	Secret string `mapstructure:"secret" default:""`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Configured reports whether the URL and secret are present.
func (c Config) Configured() bool {
	return c.BaseURL != "" && c.Secret != ""
}
