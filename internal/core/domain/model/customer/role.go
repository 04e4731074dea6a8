package customer

import (
	"fmt"

	"onlineshop/internal/pkg/errs"
)

// Role decides which lifecycle operations a customer may perform.
type Role int

const (
	UnknownRole Role = iota
	Client
	Admin
	Expeditor
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Client:      "Client",
		Admin:       "Admin",
		Expeditor:   "Expeditor",
	}
}

func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
