// Package utils provides small helpers shared across features, mostly for coercing
// loosely typed JSON fields returned by upstream APIs into Go values.
package utils
