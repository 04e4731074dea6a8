// Package customer holds the Customer entity and the roles used for authorization.
package customer
