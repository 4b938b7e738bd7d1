package models

import "time"

// Product represents a row in the PostgreSQL products table.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductRequest is the JSON body for creating or updating a product.
type ProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Image       string  `json:"image"       validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Stock       int     `json:"stock"       validate:"gte=0"`
}
