// Package errs provides standardized error types for the online shop.
//
// Two families live here:
//   - structured validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError), each a struct that unwraps
//     to a sentinel such as ErrValueIsRequired;
//   - the closed set of business failure kinds returned by the order lifecycle
//     (ErrInvalidCustomerID, ErrNotEnoughStock, ErrOrderCanceled, ...).
//
// Callers classify errors with errors.Is against the sentinels; transport
// adapters translate the business kinds into responses.
package errs
