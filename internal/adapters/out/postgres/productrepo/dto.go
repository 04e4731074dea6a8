package productrepo

import (
	"onlineshop/internal/core/domain/model/kernel"
	"onlineshop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

type ProductDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"not null"`
	Stock int       `gorm:"not null;check:stock >= 0"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:    p.ID().Google(),
		Name:  p.Name(),
		Stock: p.Stock(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, dto.Stock)
}
