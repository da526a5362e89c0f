package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
	"github.com/salonhq/invoice-delivery-service/internal/mailer"
	"github.com/salonhq/invoice-delivery-service/internal/pdf"
	"github.com/salonhq/invoice-delivery-service/internal/render"
	"github.com/salonhq/invoice-delivery-service/internal/repository"
	"github.com/salonhq/invoice-delivery-service/internal/storage"
)

// InvoiceService defines the interface for invoice generation and history
type InvoiceService interface {
	// GenerateInvoice runs the render-and-deliver pipeline and returns the
	// public URL of the stored PDF
	GenerateInvoice(ctx context.Context, invoice *domain.Invoice) (string, error)

	// History operations
	GetInvoiceByID(ctx context.Context, id string) (*domain.InvoiceRecord, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error)
}

// InvoiceServiceImpl implements the InvoiceService interface. All
// collaborators are injected and shared across concurrent requests; the
// pipeline itself holds no per-request state between calls.
type InvoiceServiceImpl struct {
	renderer   render.Renderer
	rasterizer pdf.Rasterizer
	uploader   storage.Uploader
	mailer     mailer.Mailer
	repository repository.InvoiceRepository
	timeout    time.Duration
	tempDir    string
	now        func() time.Time
}

// NewInvoiceService creates a new InvoiceService. repo may be nil, in which
// case history recording is skipped and history queries fail with
// ErrHistoryDisabled.
func NewInvoiceService(
	renderer render.Renderer,
	rasterizer pdf.Rasterizer,
	uploader storage.Uploader,
	mail mailer.Mailer,
	repo repository.InvoiceRepository,
	timeout time.Duration,
) *InvoiceServiceImpl {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &InvoiceServiceImpl{
		renderer:   renderer,
		rasterizer: rasterizer,
		uploader:   uploader,
		mailer:     mail,
		repository: repo,
		timeout:    timeout,
		tempDir:    os.TempDir(),
		now:        time.Now,
	}
}

// GenerateInvoice runs the pipeline: validate, render, assemble, rasterize,
// write temp file, upload, clean up, notify. Steps are strictly sequential;
// there are no internal retries. The per-request timeout bounds everything
// from browser launch through notification.
func (s *InvoiceServiceImpl) GenerateInvoice(ctx context.Context, invoice *domain.Invoice) (string, error) {
	// Fail fast before any expensive work.
	if !invoice.Complete() {
		return "", ErrMissingInvoiceData
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Server mode suppresses interactive-only controls.
	markup, err := s.renderer.RenderHTML(invoice, render.ModeServer)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFault, err)
	}
	doc := render.WrapPrintShell(markup)

	pdfBytes, err := s.rasterizer.RasterizePDF(ctx, doc, "#"+render.RootElementID)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := s.storageKey(invoice)
	publicURL, err := s.uploadViaTempFile(ctx, invoice, key, pdfBytes)
	if err != nil {
		return "", err
	}

	notification := &mailer.Notification{
		Customer:   invoice.Customer,
		Seller:     invoice.Seller,
		Order:      invoice.Order,
		InvoiceURL: publicURL,
	}
	if err := s.mailer.SendInvoiceLink(ctx, notification); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}

	s.recordHistory(ctx, invoice, key, publicURL)

	return publicURL, nil
}

// uploadViaTempFile stages the PDF on local disk, uploads it, and removes the
// temp file regardless of upload outcome. The temp name carries a uuid so
// concurrent requests for the same customer cannot collide.
func (s *InvoiceServiceImpl) uploadViaTempFile(ctx context.Context, invoice *domain.Invoice, key string, pdfBytes []byte) (string, error) {
	tempPath := filepath.Join(s.tempDir, fmt.Sprintf("invoice-%s-%s.pdf", sanitizeName(invoice.Customer.Name), uuid.NewString()))
	if err := os.WriteFile(tempPath, pdfBytes, 0o600); err != nil {
		return "", fmt.Errorf("%w: staging temp file: %v", ErrStorageUpload, err)
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Printf("Warning: failed to remove temp file %s: %v", tempPath, err)
		}
	}()

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading temp file: %v", ErrStorageUpload, err)
	}

	publicURL, err := s.uploader.Upload(ctx, data, key, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUpload, err)
	}

	return publicURL, nil
}

// storageKey builds the object key: invoices/<unix-timestamp>-<customer>.pdf
// with spaces replaced to keep the key URL-safe.
func (s *InvoiceServiceImpl) storageKey(invoice *domain.Invoice) string {
	return fmt.Sprintf("invoices/%d-%s.pdf", s.now().Unix(), sanitizeName(invoice.Customer.Name))
}

// recordHistory persists the bookkeeping entry. The invoice is already
// delivered at this point, so a recording failure is logged rather than
// surfaced to the caller.
func (s *InvoiceServiceImpl) recordHistory(ctx context.Context, invoice *domain.Invoice, key, publicURL string) {
	if s.repository == nil {
		return
	}

	record := &domain.InvoiceRecord{
		CustomerName: invoice.Customer.Name,
		OrderID:      invoice.Order.ID,
		StorageKey:   key,
		PublicURL:    publicURL,
	}
	if _, err := s.repository.RecordInvoice(ctx, record); err != nil {
		log.Printf("Warning: failed to record invoice history for order %s: %v", invoice.Order.ID, err)
	}
}

// GetInvoiceByID retrieves a history record
func (s *InvoiceServiceImpl) GetInvoiceByID(ctx context.Context, id string) (*domain.InvoiceRecord, error) {
	if s.repository == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repository.GetInvoiceByID(ctx, id)
}

// ListInvoices retrieves paginated history records
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	if s.repository == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repository.ListInvoices(ctx, filter)
}

// sanitizeName makes a customer name safe for use in storage keys and file
// names: whitespace becomes underscores, path separators are dropped.
func sanitizeName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	if name == "" {
		name = "invoice"
	}
	return name
}
