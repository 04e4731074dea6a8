// Package product holds the Product entity and its stock counter.
package product
