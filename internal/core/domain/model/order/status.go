package order

import (
	"fmt"

	"onlineshop/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──deliver──> Delivered ──return──> Returned
//	   │
//	   └─────cancel────> Canceled
//
// Delivering a Delivered or Returned order and canceling a Canceled order
// keep the status as is. Every other (action, status) pair is rejected with
// a business failure listed in the rejection table below.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Delivered
	Canceled
	Returned
)

// Action is a lifecycle operation applied to an existing order.
type Action string

const (
	ActionDeliver Action = "deliver"
	ActionCancel  Action = "cancel"
	ActionReturn  Action = "return"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Delivered: "Delivered",
		Canceled:  "Canceled",
		Returned:  "Returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Delivered: "Delivered",
		Canceled:  "Canceled",
		Returned:  "Returned",
	}
}

//nolint:exhaustive // missing pairs are rejected
func getTransitions() map[Action]map[Status]Status {
	return map[Action]map[Status]Status{
		ActionDeliver: {Pending: Delivered, Delivered: Delivered, Returned: Returned},
		ActionCancel:  {Pending: Canceled, Canceled: Canceled},
		ActionReturn:  {Delivered: Returned},
	}
}

//nolint:exhaustive // allowed pairs live in getTransitions
func getRejections() map[Action]map[Status]error {
	return map[Action]map[Status]error{
		ActionDeliver: {
			Canceled: errs.ErrOrderCanceled,
		},
		ActionCancel: {
			Delivered: errs.ErrOrderAlreadyDelivered,
			Returned:  errs.ErrOrderAlreadyDelivered,
		},
		ActionReturn: {
			Pending:  errs.ErrOrderNotDeliveredYet,
			Canceled: errs.ErrOrderCanceled,
			Returned: errs.ErrOrderAlreadyReturned,
		},
	}
}

// Validate checks that s is one of Pending, Delivered, Canceled or Returned.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsDelivered is true once the goods reached the customer, including orders
// that were returned afterwards.
func (s Status) IsDelivered() bool {
	return s == Delivered || s == Returned
}

func (s Status) IsCanceled() bool {
	return s == Canceled
}

func (s Status) IsReturned() bool {
	return s == Returned
}

// Apply returns the status reached by performing action from s.
// A rejected pair yields the matching business failure wrapped with context.
func (s Status) Apply(action Action) (Status, error) {
	if next, ok := getTransitions()[action][s]; ok {
		return next, nil
	}

	if kind, ok := getRejections()[action][s]; ok {
		return Unknown, fmt.Errorf("can not %s %s order: %w", action, s, kind)
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}

// Deliver transitions Pending to Delivered. Delivered and Returned stay put.
func (s Status) Deliver() (Status, error) {
	return s.Apply(ActionDeliver)
}

// Cancel transitions Pending to Canceled. Canceled stays put.
func (s Status) Cancel() (Status, error) {
	return s.Apply(ActionCancel)
}

// Return transitions Delivered to Returned.
func (s Status) Return() (Status, error) {
	return s.Apply(ActionReturn)
}
