// Package ports declares the persistence and messaging interfaces the
// application core depends on. Adapters under internal/adapters implement them.
package ports
