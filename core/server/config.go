package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ApiKey is the secret key required to access the admin API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// WebhookSecret is the Patreon webhook secret used to verify signatures.
	WebhookSecret string `mapstructure:"webhook_secret" default:""`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":3000"
	}
	return ":" + c.Port
}

// WebhookEnabled reports whether webhook deliveries can be verified.
func (c Config) WebhookEnabled() bool {
	return c.WebhookSecret != ""
}
