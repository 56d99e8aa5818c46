// Package dragonite mirrors the Dragonite area roster in memory for the reconciliation.
//
// # HTTP
//
//	GET  /dragonite/areas
//	GET  /dragonite/stats
//	POST /dragonite/sync
package dragonite
