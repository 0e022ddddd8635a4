package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" validate:"required,min=2,max=50"`
	Stock       int64           `json:"stock"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Stock       *int64           `json:"stock"`
}

// ListProductsQuery parámetros de listado con filtros y paginación.
type ListProductsQuery struct {
	Page     int              `query:"page"`
	Limit    int              `query:"limit"`
	Category string           `query:"category"`
	MinPrice *decimal.Decimal `query:"minPrice"`
	MaxPrice *decimal.Decimal `query:"maxPrice"`
}

// Defaults aplica los valores por defecto de paginación.
func (q *ListProductsQuery) Defaults() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int64           `json:"stock"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products    []ProductResponse `json:"products"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// BuyProductRequest entrada para comprar un producto. Quantity es puntero
// para distinguir el campo ausente (default 1) de un 0 explícito (rechazado).
type BuyProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int64 `json:"quantity"`
}

// PurchaseResponse producto actualizado + detalle de la compra.
type PurchaseResponse struct {
	Product    ProductResponse `json:"product"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
