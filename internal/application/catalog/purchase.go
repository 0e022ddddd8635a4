package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// PurchaseUseCase ejecuta la compra con decremento atómico de stock.
// La exclusión mutua se delega al bloqueo de fila de la transacción
// (SELECT FOR UPDATE), no a un lock en proceso: varias instancias del
// servicio pueden correr concurrentemente sin sobreventa.
type PurchaseUseCase struct {
	txRunner TxRunner
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner}
}

// BuyAndReduceStock compra quantity unidades de un producto dentro de una
// transacción: lee con bloqueo de fila, valida stock >= quantity, calcula
// precio total y decrementa. Cualquier error aborta la transacción y deja el
// stock intacto; el decremento nunca es visible antes del Commit.
// quantity <= 0 o productID malformado fallan con ErrInvalidInput antes de
// tocar storage.
func (uc *PurchaseUseCase) BuyAndReduceStock(ctx context.Context, productID, userID string, quantity int64) (*dto.PurchaseResponse, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PurchaseResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < quantity {
			return domain.ErrInsufficientStock
		}
		totalPrice := product.Price.Mul(decimal.NewFromInt(quantity))
		product.Stock -= quantity
		if err := products.Update(product); err != nil {
			return err
		}
		out = &dto.PurchaseResponse{
			Product:    *toProductResponse(product),
			Quantity:   quantity,
			TotalPrice: totalPrice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
