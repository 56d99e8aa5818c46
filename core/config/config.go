package config

import (
	"fmt"
	"reflect"
	"strings"

	"patron-manager/core/database"
	"patron-manager/core/kv"
	"patron-manager/core/logger"
	"patron-manager/core/scheduler"
	"patron-manager/core/server"
	"patron-manager/core/storage"
	dragonite "patron-manager/feature/dragonite/client"
	patreon "patron-manager/feature/patreon/client"
	"patron-manager/feature/reconcile"
	"patron-manager/feature/supporters"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sync history database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Redis holds configuration for webhook dedupe and sync locks.
	Redis kv.Config `mapstructure:"redis"`
	// Scheduler holds the periodic sync schedules.
	Scheduler scheduler.Config `mapstructure:"scheduler"`
	// Patreon holds the creator API credentials.
	Patreon patreon.Config `mapstructure:"patreon"`
	// Dragonite holds the Dragonite API credentials.
	Dragonite dragonite.Config `mapstructure:"dragonite"`
	// Supporters selects where the static inputs are loaded from.
	Supporters supporters.Config `mapstructure:"supporters"`
	// Reconcile holds reconciliation settings.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
}

// legacyEnv maps config keys to the environment names used by earlier deployments.
// The canonical name always comes first and wins.
var legacyEnv = map[string][]string{
	"server.port":           {"SERVER_PORT", "PORT"},
	"server.webhook_secret": {"SERVER_WEBHOOK_SECRET", "PATREON_WEBHOOK_SECRET"},
	"patreon.token":         {"PATREON_TOKEN", "CREATOR_TOKEN"},
	"patreon.campaign_id":   {"PATREON_CAMPAIGN_ID", "CREATOR_CAMPAIGN"},
	"dragonite.base_url":    {"DRAGONITE_BASE_URL", "DRAGONITE_API_URL"},
	"dragonite.secret":      {"DRAGONITE_SECRET", "DRAGONITE_API_SECRET"},
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
