package catalog

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de productos atado a esa tx. Garantiza atomicidad para el
// decremento de stock: nada del closure es visible antes del Commit y un
// error lo revierte completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}
