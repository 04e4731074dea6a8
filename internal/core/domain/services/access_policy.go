package services

import (
	"fmt"

	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/pkg/errs"
)

// Operation names a role-gated lifecycle entry point.
type Operation string

const (
	OperationPlaceOrder   Operation = "place"
	OperationDeliverOrder Operation = "deliver"
	OperationCancelOrder  Operation = "cancel"
	OperationReturnOrder  Operation = "return"
)

func getRequiredRoles() map[Operation]customer.Role {
	return map[Operation]customer.Role{
		OperationPlaceOrder:   customer.Client,
		OperationDeliverOrder: customer.Expeditor,
		OperationCancelOrder:  customer.Client,
		OperationReturnOrder:  customer.Client,
	}
}

// AccessPolicy runs in front of the order state guards. Ownership of an
// order is checked by the order itself, not here.
type AccessPolicy struct{}

func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// Authorize fails with errs.ErrInvalidOperation when requester lacks the role
// required by operation.
func (AccessPolicy) Authorize(requester *customer.Customer, operation Operation) error {
	if err := requester.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidCustomerID, err)
	}

	role, ok := getRequiredRoles()[operation]
	if !ok {
		return fmt.Errorf("unknown operation %q: %w", operation, errs.ErrInvalidOperation)
	}

	if !requester.HasRole(role) {
		return fmt.Errorf("%s may not %s orders: %w", requester.Role(), operation, errs.ErrInvalidOperation)
	}
	return nil
}
