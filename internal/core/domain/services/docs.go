// Package services holds domain logic that spans several aggregates:
//   - StockLedger reserves and restores product stock for orders
//   - AccessPolicy decides which customer role may run which lifecycle operation
package services
