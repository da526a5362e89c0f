package render

import (
	"github.com/salonhq/invoice-delivery-service/internal/domain"
)

// Mode selects the presentation mode for invoice rendering.
type Mode string

const (
	// ModeServer renders static markup for PDF capture: interactive-only
	// controls (the download button) are suppressed.
	ModeServer Mode = "server"
	// ModeInteractive renders markup for a live browser session.
	ModeInteractive Mode = "interactive"
)

// Renderer produces deterministic invoice markup from a domain invoice.
// Same invoice and mode must always yield the same markup.
type Renderer interface {
	RenderHTML(invoice *domain.Invoice, mode Mode) (string, error)
}
