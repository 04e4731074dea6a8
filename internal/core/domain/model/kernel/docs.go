// Package kernel holds value objects shared by every aggregate of the shop,
// currently only the UUID identifier used for customers, products and orders.
package kernel
