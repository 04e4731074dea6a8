// Package queries contains read-only use cases. Handlers read the database
// directly with SQL and return flat response structs, bypassing the aggregates.
package queries
