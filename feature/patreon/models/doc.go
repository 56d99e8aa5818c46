// Package models defines the Patreon member record held by the membership store and the
// JSON:API wire types of the Patreon creator API and its webhooks.
package models
