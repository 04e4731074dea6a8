package queries

import (
	"context"
	"database/sql"
	"errors"

	"onlineshop/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (GetProductQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductQueryResponse{}, err
	}

	response := GetProductQueryResponse{ID: query.ProductID()}
	err := h.db.WithContext(ctx).Raw(`
		SELECT name, stock
		FROM products
		WHERE id = ?
	`, query.ProductID().Google()).Row().Scan(&response.Name, &response.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetProductQueryResponse{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
		}
		return GetProductQueryResponse{}, err
	}

	return response, nil
}
