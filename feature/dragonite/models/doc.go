// Package models defines the Dragonite area roster as seen by the reconciliation.
package models
