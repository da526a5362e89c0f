package render

import (
	"strings"
	"testing"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		Customer: domain.CustomerInfo{
			Name:  "Jane Doe",
			Email: "jane@example.com",
		},
		Seller: domain.SellerInfo{
			Name:    "Acme Salon",
			Address: "12 High Street",
		},
		Order: domain.OrderDetails{
			ID:   "ORD-1",
			Date: "2026-08-30",
		},
		Items: []domain.LineItem{
			{Description: "Haircut", Quantity: 1, UnitPrice: 500},
			{Description: "Shampoo", Quantity: 2, UnitPrice: 150, TaxPercent: 10},
		},
		Notes: "Thank you for your visit",
	}
}

func TestRenderHTML(t *testing.T) {
	renderer := NewHTMLRenderer()

	tests := []struct {
		name        string
		mode        Mode
		wantInBody  []string
		notInBody   []string
	}{
		{
			name: "server mode renders invoice fields",
			mode: ModeServer,
			wantInBody: []string{
				`id="invoice-root"`,
				"Jane Doe",
				"Acme Salon",
				"ORD-1",
				"Haircut",
				"Shampoo",
				"500.00",
			},
			notInBody: []string{"download-button"},
		},
		{
			name:       "interactive mode includes download control",
			mode:       ModeInteractive,
			wantInBody: []string{"download-button"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderHTML(sampleInvoice(), tt.mode)
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}

			for _, want := range tt.wantInBody {
				if !strings.Contains(got, want) {
					t.Errorf("RenderHTML() missing %q", want)
				}
			}
			for _, notWant := range tt.notInBody {
				if strings.Contains(got, notWant) {
					t.Errorf("RenderHTML() should not contain %q", notWant)
				}
			}
		})
	}
}

func TestRenderHTMLDeterministic(t *testing.T) {
	renderer := NewHTMLRenderer()

	first, err := renderer.RenderHTML(sampleInvoice(), ModeServer)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	second, err := renderer.RenderHTML(sampleInvoice(), ModeServer)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	if first != second {
		t.Error("RenderHTML() is not deterministic for identical input")
	}
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	renderer := NewHTMLRenderer()

	invoice := sampleInvoice()
	invoice.Customer.Name = `<script>alert("x")</script>`
	invoice.Notes = `"quoted" & <b>bold</b>`

	got, err := renderer.RenderHTML(invoice, ModeServer)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	if strings.Contains(got, "<script>") {
		t.Error("RenderHTML() did not escape script tag in customer name")
	}
	if strings.Contains(got, "<b>bold</b>") {
		t.Error("RenderHTML() did not escape markup in notes")
	}
}

func TestRenderHTMLTotals(t *testing.T) {
	renderer := NewHTMLRenderer()

	invoice := sampleInvoice()
	invoice.Discount = 30

	// 500 + (2*150)*1.10 - 30 = 800
	got, err := renderer.RenderHTML(invoice, ModeServer)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	if !strings.Contains(got, "800.00") {
		t.Errorf("RenderHTML() missing grand total 800.00")
	}
	if !strings.Contains(got, "-30.00") {
		t.Errorf("RenderHTML() missing discount line")
	}
}

func TestWrapPrintShell(t *testing.T) {
	doc := WrapPrintShell(`<div id="invoice-root">content</div>`)

	wantFragments := []string{
		"size: 210mm 297mm",
		"margin: 0",
		"width: 210mm",
		"height: 297mm",
		"serif",
		`<div id="invoice-root">content</div>`,
	}
	for _, want := range wantFragments {
		if !strings.Contains(doc, want) {
			t.Errorf("WrapPrintShell() missing %q", want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{2.5, "2.5"},
		{0.25, "0.25"},
		{10, "10"},
	}

	for _, tt := range tests {
		if got := formatQuantity(tt.in); got != tt.want {
			t.Errorf("formatQuantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
