package dto

import "github.com/aarondl/null/v8"

type CreateClientDTO struct {
	Name       string      `json:"name" validate:"required"`
	Company    null.String `json:"company"`
	Phone      null.String `json:"phone" validate:"omitempty,ua_phone"`
	Email      null.String `json:"email" validate:"omitempty,email"`
	Location   null.String `json:"location"`
	ObjectType null.String `json:"object_type"`
}

type UpdateClientDTO struct {
	Name       *string     `json:"name"`
	Company    null.String `json:"company"`
	Phone      null.String `json:"phone" validate:"omitempty,ua_phone"`
	Email      null.String `json:"email" validate:"omitempty,email"`
	Location   null.String `json:"location"`
	ObjectType null.String `json:"object_type"`
}

type ClientResponseDTO struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Company    *string `json:"company,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Location   *string `json:"location,omitempty"`
	ObjectType *string `json:"object_type,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

type ShortClientDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
