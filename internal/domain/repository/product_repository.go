package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para listados de productos.
type ProductFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila y solo tiene sentido dentro de una transacción
// (ver TxRunner en application/catalog).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(filter ProductFilter) (int, error)
}
