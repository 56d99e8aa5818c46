// Package config loads the service configuration with Viper.
//
// Values come from the environment, optionally seeded from a .env file. Every field of the
// partial configs declares its default in a `default` struct tag, and nested keys map to
// upper-case environment names joined by underscores (server.port is SERVER_PORT).
//
// # Legacy names
//
// The environment names of earlier deployments are still honoured when the canonical name is
// unset: PORT, PATREON_WEBHOOK_SECRET, CREATOR_TOKEN, CREATOR_CAMPAIGN, DRAGONITE_API_URL and
// DRAGONITE_API_SECRET.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Address())
package config
