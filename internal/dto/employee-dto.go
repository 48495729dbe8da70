package dto

import "github.com/aarondl/null/v8"

type CreateEmployeeDTO struct {
	FullName string      `json:"full_name" validate:"required"`
	Position null.String `json:"position"`
	Role     string      `json:"role" validate:"required,oneof=admin manager installer"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
}

type UpdateEmployeeDTO struct {
	FullName *string     `json:"full_name"`
	Position null.String `json:"position"`
	Role     *string     `json:"role" validate:"omitempty,oneof=admin manager installer"`
	Email    *string     `json:"email" validate:"omitempty,email"`
	Password *string     `json:"password" validate:"omitempty,min=6"`
}

type EmployeeResponseDTO struct {
	ID        uint64  `json:"id"`
	FullName  string  `json:"full_name"`
	Position  *string `json:"position,omitempty"`
	Role      string  `json:"role"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
}

type ShortEmployeeDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
}
