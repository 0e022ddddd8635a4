package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock nunca es negativo; solo lo decrementa la compra transaccional.
// Price con semántica de dos decimales (NUMERIC en DB).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Stock       int64
	CreatedBy   string // usuario creador; único autorizado a modificar/eliminar
	CreatedAt   time.Time
}
