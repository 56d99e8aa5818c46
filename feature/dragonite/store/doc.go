// Package store keeps the latest Dragonite area roster. Each sync replaces the whole snapshot.
package store
