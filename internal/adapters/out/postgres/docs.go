// Package postgres implements the unit of work over GORM. Repositories for
// customers, orders and products live in sub-packages and share the
// transaction opened by Begin.
package postgres
