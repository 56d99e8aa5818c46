// Package client is a small client for the Dragonite admin API, authenticated with the
// authorized cookie.
package client
