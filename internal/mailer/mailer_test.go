package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

func TestNewSMTPMailerValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{
			name:   "missing host",
			config: &Config{From: "billing@acme.example"},
		},
		{
			name:   "missing sender",
			config: &Config{Host: "smtp.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSMTPMailer(tt.config); err == nil {
				t.Error("NewSMTPMailer() should fail with incomplete config")
			}
		})
	}
}

func TestBuildBody(t *testing.T) {
	notification := &Notification{
		Customer:   domain.CustomerInfo{Name: "Jane Doe"},
		Seller:     domain.SellerInfo{Name: "Acme Salon"},
		Order:      domain.OrderDetails{ID: "ORD-1", Date: "2026-08-30"},
		InvoiceURL: "https://invoices-bucket.s3.example.com/invoices/1756700000-Jane_Doe.pdf",
	}

	body := buildBody(notification)

	wantFragments := []string{
		"Jane Doe",
		"Acme Salon",
		"ORD-1",
		"2026-08-30",
		notification.InvoiceURL,
	}
	for _, want := range wantFragments {
		if !strings.Contains(body, want) {
			t.Errorf("buildBody() missing %q", want)
		}
	}
}

func TestBuildBodyEscapesInput(t *testing.T) {
	notification := &Notification{
		Customer:   domain.CustomerInfo{Name: `<script>alert("x")</script>`},
		Seller:     domain.SellerInfo{Name: "Acme Salon"},
		Order:      domain.OrderDetails{ID: "ORD-1"},
		InvoiceURL: "https://example.com/invoice.pdf",
	}

	body := buildBody(notification)

	if strings.Contains(body, "<script>") {
		t.Error("buildBody() did not escape customer name")
	}
}

func TestSendInvoiceLinkRequiresRecipient(t *testing.T) {
	m := &SMTPMailer{from: "billing@acme.example"}

	err := m.SendInvoiceLink(context.Background(), &Notification{
		Customer: domain.CustomerInfo{Name: "Jane Doe"},
		Order:    domain.OrderDetails{ID: "ORD-1"},
	})
	if err == nil {
		t.Error("SendInvoiceLink() should fail with no recipient address")
	}
}

func TestSendInvoiceLinkCancelledContext(t *testing.T) {
	m := &SMTPMailer{from: "billing@acme.example", to: "owner@acme.example"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendInvoiceLink(ctx, &Notification{
		Customer: domain.CustomerInfo{Name: "Jane Doe"},
		Order:    domain.OrderDetails{ID: "ORD-1"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("SendInvoiceLink() error = %v, want context.Canceled", err)
	}
}
