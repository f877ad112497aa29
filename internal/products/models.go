package products

import (
	"time"

	"github.com/google/uuid"
)

// Product represents one item in the demo store catalog
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"` // smallest currency unit
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest is the request body for creating a product (admin only)
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Price       int    `json:"price" binding:"required,min=0"`
	ImageURL    string `json:"image_url"`
}

// UpdateProductRequest is the request body for updating a product (admin only)
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Price       *int    `json:"price,omitempty" binding:"omitempty,min=0"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// PaginatedProductsResponse is the paginated catalog listing
type PaginatedProductsResponse struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
