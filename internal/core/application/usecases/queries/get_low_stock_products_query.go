package queries

import (
	"errors"
	"fmt"

	"onlineshop/internal/pkg/errs"
	"onlineshop/internal/pkg/guard"
)

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

// GetLowStockProductsQuery lists products whose stock is at or below threshold.
type GetLowStockProductsQuery struct {
	threshold int

	guard guard.ConstructorGuard
}

func NewGetLowStockProductsQuery(threshold int) (GetLowStockProductsQuery, error) {
	if threshold < 0 {
		return GetLowStockProductsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"threshold", fmt.Errorf("%d is negative", threshold))
	}
	return GetLowStockProductsQuery{threshold: threshold, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}

func (q GetLowStockProductsQuery) Threshold() int {
	return q.threshold
}

type GetLowStockProductsQueryResponse struct {
	Products []GetProductQueryResponse
}
