// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the settings it
// needs: the listen port, the admin API key and the Patreon webhook secret.
package server
