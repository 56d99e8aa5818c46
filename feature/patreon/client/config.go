package client

// Config holds configuration for the Patreon creator API.
type Config struct {
	// BaseURL is the root of the Patreon OAuth2 v2 API.
	BaseURL string `mapstructure:"base_url" default:"https://www.patreon.com/api/oauth2/v2"`
	// Token is the creator access token.
	Token string `mapstructure:"token" default:""`
	// CampaignID is the campaign whose members are synced.
	CampaignID string `mapstructure:"campaign_id" default:""`
	// TimeoutSeconds bounds each page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Configured reports whether the credentials needed for a sync are present.
func (c Config) Configured() bool {
	return c.Token != "" && c.CampaignID != ""
}
