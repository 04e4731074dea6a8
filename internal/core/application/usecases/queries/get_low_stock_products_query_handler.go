package queries

import (
	"context"

	"onlineshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLowStockProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockProductsQueryHandler(db *gorm.DB) GetLowStockProductsQueryHandler {
	return GetLowStockProductsQueryHandler{db: db}
}

// Handle returns the products ordered by ascending stock, then by name.
func (h GetLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockProductsQuery,
) (GetLowStockProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLowStockProductsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, stock
		FROM products
		WHERE stock <= ?
		ORDER BY stock, name
	`, query.Threshold()).Rows()
	if err != nil {
		return GetLowStockProductsQueryResponse{}, err
	}
	defer rows.Close()

	response := GetLowStockProductsQueryResponse{Products: make([]GetProductQueryResponse, 0)}
	for rows.Next() {
		var id uuid.UUID
		var p GetProductQueryResponse
		if err = rows.Scan(&id, &p.Name, &p.Stock); err != nil {
			return GetLowStockProductsQueryResponse{}, err
		}

		if p.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return GetLowStockProductsQueryResponse{}, err
		}
		response.Products = append(response.Products, p)
	}

	if err = rows.Err(); err != nil {
		return GetLowStockProductsQueryResponse{}, err
	}

	return response, nil
}
