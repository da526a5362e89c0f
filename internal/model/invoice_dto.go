package model

import (
	"encoding/json"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// GenerateInvoiceRequest represents an incoming invoice generation request.
// The four required sections are declared as raw JSON so that "absent" and
// "present" can be told apart before decoding into domain types.
type GenerateInvoiceRequest struct {
	CustomerInfo json.RawMessage   `json:"customerInfo"`
	SellerInfo   json.RawMessage   `json:"sellerInfo"`
	OrderDetails json.RawMessage   `json:"orderDetails"`
	Items        []domain.LineItem `json:"items"`
	CompanyLogo  string            `json:"companyLogo,omitempty"`
	Discount     float64           `json:"discount,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

// HasRequiredFields reports whether every mandatory section is present and
// non-empty.
func (r *GenerateInvoiceRequest) HasRequiredFields() bool {
	return len(r.CustomerInfo) > 0 && string(r.CustomerInfo) != "null" &&
		len(r.SellerInfo) > 0 && string(r.SellerInfo) != "null" &&
		len(r.OrderDetails) > 0 && string(r.OrderDetails) != "null" &&
		len(r.Items) > 0
}

// ToDomain decodes the raw sections into a domain invoice.
func (r *GenerateInvoiceRequest) ToDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		Items:       r.Items,
		CompanyLogo: r.CompanyLogo,
		Discount:    r.Discount,
		Notes:       r.Notes,
	}
	if err := json.Unmarshal(r.CustomerInfo, &inv.Customer); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.SellerInfo, &inv.Seller); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(r.OrderDetails, &inv.Order); err != nil {
		return nil, err
	}
	return inv, nil
}

// GenerateInvoiceResponse is the success body for invoice generation.
type GenerateInvoiceResponse struct {
	Success   bool   `json:"success"`
	PublicURL string `json:"publicUrl"`
}

// GenerateInvoiceErrorResponse is the failure body for invoice generation.
type GenerateInvoiceErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorDetail provides field-level error information for validation failures.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the generic error envelope used by non-pipeline endpoints.
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// InvoiceRecordDTO represents one history entry in API responses.
type InvoiceRecordDTO struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	OrderID      string `json:"orderId"`
	StorageKey   string `json:"storageKey"`
	PublicURL    string `json:"publicUrl"`
	CreatedAt    string `json:"createdAt"`
}

// PaginationDTO carries pagination metadata for list responses.
type PaginationDTO struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// InvoiceListResponse is the body for GET /v1/invoices.
type InvoiceListResponse struct {
	Data       []InvoiceRecordDTO `json:"data"`
	Pagination PaginationDTO      `json:"pagination"`
}

// FromDomain converts a domain record to its DTO form.
func (dto *InvoiceRecordDTO) FromDomain(rec *domain.InvoiceRecord) {
	dto.ID = rec.ID
	dto.CustomerName = rec.CustomerName
	dto.OrderID = rec.OrderID
	dto.StorageKey = rec.StorageKey
	dto.PublicURL = rec.PublicURL
	dto.CreatedAt = rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
}
