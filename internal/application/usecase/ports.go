package usecase

import (
	"context"

	"github.com/kaynetech/RetailRx/internal/domain/entity"
	"github.com/kaynetech/RetailRx/internal/domain/repository"
)

// TxRunner runs a function inside a database transaction, passing repositories
// bound to that transaction. Checkout and order receiving depend on it for
// atomicity between stock movements and their source documents.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// PurchaseOrderPDFGenerator renders a purchase order as a printable PDF.
type PurchaseOrderPDFGenerator interface {
	Generate(order *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}
