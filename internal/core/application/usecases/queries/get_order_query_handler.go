package queries

import (
	"context"
	"database/sql"
	"errors"

	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/order"
	"onlineshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var customerID uuid.UUID
	var status int
	err := db.Raw(`
		SELECT customer_id, status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Google()).Row().Scan(&customerID, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromGoogle(customerID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	response := GetOrderQueryResponse{
		ID:         query.OrderID(),
		CustomerID: owner,
		Status:     orderStatus,
		Delivered:  orderStatus.IsDelivered(),
		Canceled:   orderStatus.IsCanceled(),
		Returned:   orderStatus.IsReturned(),
		Items:      make([]GetOrderQueryItem, 0),
	}

	rows, err := db.Raw(`
		SELECT product_id, quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Google()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var quantity int
		if err = rows.Scan(&productID, &quantity); err != nil {
			return GetOrderQueryResponse{}, err
		}

		id, idErr := kernel.UUIDFromGoogle(productID)
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		response.Items = append(response.Items, GetOrderQueryItem{ProductID: id, Quantity: quantity})
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
