package repository

import (
	"context"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// InvoiceRepository defines the interface for invoice history storage
type InvoiceRepository interface {
	// RecordInvoice stores a bookkeeping entry for a delivered invoice
	RecordInvoice(ctx context.Context, record *domain.InvoiceRecord) (*domain.InvoiceRecord, error)

	// GetInvoiceByID retrieves a history record by its ID
	GetInvoiceByID(ctx context.Context, id string) (*domain.InvoiceRecord, error)

	// ListInvoices retrieves history records with pagination
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error)
}
