package customerrepo

import (
	"onlineshop/internal/core/domain/model/customer"
	"onlineshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"not null"`
	Role int       `gorm:"type:smallint;not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:   c.ID().Google(),
		Name: c.Name(),
		Role: int(c.Role()),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return customer.NewCustomer(id, dto.Name, customer.Role(dto.Role))
}
