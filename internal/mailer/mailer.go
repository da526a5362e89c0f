package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// Notification is the structured payload carried by the invoice email.
type Notification struct {
	Customer   domain.CustomerInfo
	Seller     domain.SellerInfo
	Order      domain.OrderDetails
	InvoiceURL string
}

// Mailer dispatches an invoice notification. Delivery is best effort, single
// attempt; failures propagate to the caller. The context bounds dispatch.
// Implementations must be safe for concurrent use.
type Mailer interface {
	SendInvoiceLink(ctx context.Context, notification *Notification) error
}

// Compile-time interface check
var _ Mailer = (*SMTPMailer)(nil)

// Config holds configuration for the SMTP mailer
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPMailer sends invoice notifications over SMTP. The dialer holds no
// per-message state, so one mailer serves concurrent requests.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) (*SMTPMailer, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is not configured")
	}
	if config.From == "" {
		return nil, fmt.Errorf("mail sender address is not configured")
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
		to:     config.To,
	}, nil
}

// SendInvoiceLink emails the invoice link along with customer, seller, and
// order details. The SMTP dial has no deadline of its own, so delivery runs
// in a goroutine raced against ctx.
func (m *SMTPMailer) SendInvoiceLink(ctx context.Context, notification *Notification) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to send invoice notification: %w", err)
	}

	to := m.to
	if to == "" {
		to = notification.Customer.Email
	}
	if to == "" {
		return fmt.Errorf("no recipient address for invoice notification")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Invoice for order %s", notification.Order.ID))
	msg.SetBody("text/html", buildBody(notification))

	sent := make(chan error, 1)
	go func() {
		sent <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-sent:
		if err != nil {
			return fmt.Errorf("failed to send invoice notification: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to send invoice notification: %w", ctx.Err())
	}
}

// buildBody renders the notification email body.
func buildBody(n *Notification) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<p>Hello %s,</p>", html.EscapeString(n.Customer.Name)))
	b.WriteString(fmt.Sprintf("<p>Your invoice from %s is ready.</p>", html.EscapeString(n.Seller.Name)))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Order: %s</li>", html.EscapeString(n.Order.ID)))
	if n.Order.Date != "" {
		b.WriteString(fmt.Sprintf("<li>Date: %s</li>", html.EscapeString(n.Order.Date)))
	}
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf(`<p><a href="%s">Download your invoice</a></p>`, html.EscapeString(n.InvoiceURL)))

	return b.String()
}
