package errs

import "errors"

// Business failure kinds. Each one is a client input or order state rejection,
// surfaced to the caller as is and never retried.
var (
	ErrInvalidCustomerID     = errors.New("customer id is invalid")
	ErrInvalidProductID      = errors.New("product id is invalid")
	ErrInvalidProducts       = errors.New("requested products are invalid")
	ErrNotEnoughStock        = errors.New("not enough stock")
	ErrInvalidOrderID        = errors.New("order id is invalid")
	ErrOrderCanceled         = errors.New("order was canceled")
	ErrOrderAlreadyDelivered = errors.New("order was already delivered")
	ErrOrderNotDeliveredYet  = errors.New("order can not be returned because it was not delivered")
	ErrOrderAlreadyReturned  = errors.New("order was already returned")
	ErrInvalidOperation      = errors.New("user is not allowed to perform this operation")
)

var businessFailures = []error{
	ErrInvalidCustomerID,
	ErrInvalidProductID,
	ErrInvalidProducts,
	ErrNotEnoughStock,
	ErrInvalidOrderID,
	ErrOrderCanceled,
	ErrOrderAlreadyDelivered,
	ErrOrderNotDeliveredYet,
	ErrOrderAlreadyReturned,
	ErrInvalidOperation,
}

// IsBusinessFailure reports whether err wraps one of the business failure kinds.
func IsBusinessFailure(err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range businessFailures {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
