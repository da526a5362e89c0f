package domain

import (
	"time"
)

// CustomerInfo identifies the party being billed.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SellerInfo identifies the issuing business.
type SellerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// OrderDetails carries order/transaction metadata for the invoice header.
type OrderDetails struct {
	ID     string `json:"id"`
	Date   string `json:"date,omitempty"` // Format: YYYY-MM-DD
	Number string `json:"number,omitempty"`
}

// LineItem represents a single billable line on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"qty"`
	UnitPrice   float64 `json:"price"`
	TaxPercent  float64 `json:"tax_percent,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
}

// Amount returns the line total after per-line discount and tax.
func (li LineItem) Amount() float64 {
	base := li.Quantity*li.UnitPrice - li.Discount
	return base + base*li.TaxPercent/100
}

// Invoice is the core domain entity: everything needed to render one invoice
// document. Nothing here is persisted; the entity lives for one request.
type Invoice struct {
	Customer    CustomerInfo `json:"customer_info"`
	Seller      SellerInfo   `json:"seller_info"`
	Order       OrderDetails `json:"order_details"`
	Items       []LineItem   `json:"items"`
	CompanyLogo string       `json:"company_logo,omitempty"`
	Discount    float64      `json:"discount,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}

// Total returns the invoice grand total: sum of line amounts minus the
// invoice-level discount.
func (inv *Invoice) Total() float64 {
	var sum float64
	for _, item := range inv.Items {
		sum += item.Amount()
	}
	return sum - inv.Discount
}

// Complete reports whether all required sections are present. An incomplete
// invoice is a client error, not a pipeline fault.
func (inv *Invoice) Complete() bool {
	return inv.Customer.Name != "" &&
		inv.Seller.Name != "" &&
		inv.Order.ID != "" &&
		len(inv.Items) > 0
}

// InvoiceRecord is the bookkeeping entry persisted once per successfully
// delivered invoice.
type InvoiceRecord struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	OrderID      string    `json:"order_id"`
	StorageKey   string    `json:"storage_key"`
	PublicURL    string    `json:"public_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvoiceFilter holds pagination parameters for history listings.
type InvoiceFilter struct {
	Page  int
	Limit int
}

// PaginatedInvoices is a page of history records plus pagination metadata.
type PaginatedInvoices struct {
	Records     []InvoiceRecord `json:"records"`
	TotalItems  int             `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Limit       int             `json:"limit"`
}
