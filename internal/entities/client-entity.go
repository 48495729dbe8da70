package entities

import "time"

type Client struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	Company    *string    `json:"company"`
	Phone      *string    `json:"phone"`
	Email      *string    `json:"email"`
	Location   *string    `json:"location"`
	ObjectType *string    `json:"object_type"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
