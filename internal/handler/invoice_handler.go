package handler

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/salonhq/invoice-delivery-service/internal/domain"
	"github.com/salonhq/invoice-delivery-service/internal/model"
	"github.com/salonhq/invoice-delivery-service/internal/pdf"
	"github.com/salonhq/invoice-delivery-service/internal/service"
)

// MsgMissingInvoiceData is the caller-visible message for validation failures.
const MsgMissingInvoiceData = "Missing required invoice data (customerInfo, sellerInfo, orderDetails, items)."

// InvoiceHandler handles HTTP requests for invoice generation and history
type InvoiceHandler struct {
	service service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		service: svc,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/v1/invoices/generate", h.GenerateInvoice)
	router.GET("/v1/invoices", h.ListInvoices)
	router.GET("/v1/invoices/:id", h.GetInvoice)
}

// GenerateInvoice handles a request to render, store, and deliver an invoice
// @Summary Generate an invoice PDF
// @Description Render invoice data to a single-page A4 PDF, store it, and email a link
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.GenerateInvoiceRequest true "Invoice data"
// @Success 200 {object} model.GenerateInvoiceResponse "Invoice generated and delivered"
// @Failure 400 {object} model.GenerateInvoiceErrorResponse "Required invoice data missing"
// @Failure 500 {object} model.GenerateInvoiceErrorResponse "Pipeline failure"
// @Router /v1/invoices/generate [post]
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	var request model.GenerateInvoiceRequest
	if err := bindJSON(c, &request); err != nil {
		respondPipelineFailure(c, StatusBadRequest, "Invalid request body.")
		return
	}

	if !request.HasRequiredFields() {
		respondPipelineFailure(c, StatusBadRequest, MsgMissingInvoiceData)
		return
	}

	invoice, err := request.ToDomain()
	if err != nil {
		respondPipelineFailure(c, StatusBadRequest, "Invalid request body.")
		return
	}

	log.Printf("Generating invoice for order %s (customer: %s)", invoice.Order.ID, invoice.Customer.Name)
	publicURL, err := h.service.GenerateInvoice(c.Request.Context(), invoice)
	if err != nil {
		status, message := classifyPipelineError(err)
		respondPipelineFailure(c, status, message)
		return
	}

	respondOK(c, model.GenerateInvoiceResponse{
		Success:   true,
		PublicURL: publicURL,
	})
}

// classifyPipelineError maps pipeline errors onto HTTP statuses and
// caller-safe messages. Unrecognized errors get a generic message so
// internals never leak to the caller.
func classifyPipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingInvoiceData):
		return StatusBadRequest, MsgMissingInvoiceData
	case errors.Is(err, pdf.ErrRootNotFound):
		return StatusInternalServerError, "Invoice rendering failed."
	case errors.Is(err, service.ErrRenderFault):
		return StatusInternalServerError, "Invoice rendering failed."
	case errors.Is(err, pdf.ErrBrowserLaunch),
		errors.Is(err, pdf.ErrPageCreate),
		errors.Is(err, pdf.ErrPageLoad),
		errors.Is(err, pdf.ErrPDFExport):
		return StatusInternalServerError, "Invoice PDF generation failed."
	case errors.Is(err, service.ErrStorageUpload):
		return StatusInternalServerError, "Invoice upload failed."
	case errors.Is(err, service.ErrMailDispatch):
		return StatusInternalServerError, "Invoice notification failed."
	default:
		return StatusInternalServerError, "Invoice generation failed."
	}
}

// ListInvoices handles a request for the invoice history
// @Summary List generated invoices
// @Description Paginated history of generated invoices, newest first
// @Tags invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} model.InvoiceListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse "History not configured"
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	limit, err := getQueryInt(c, "limit", 20)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := validatePagination(page, limit); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListInvoices(c.Request.Context(), domain.InvoiceFilter{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			respondServiceUnavailable(c, ErrHistoryDisabled)
			return
		}
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	data := make([]model.InvoiceRecordDTO, 0, len(result.Records))
	for i := range result.Records {
		var dto model.InvoiceRecordDTO
		dto.FromDomain(&result.Records[i])
		data = append(data, dto)
	}

	respondOK(c, model.InvoiceListResponse{
		Data: data,
		Pagination: model.PaginationDTO{
			TotalItems:  result.TotalItems,
			TotalPages:  result.TotalPages,
			CurrentPage: result.CurrentPage,
			Limit:       result.Limit,
		},
	})
}

// GetInvoice handles a request for a single history record
// @Summary Get a generated invoice record
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice record ID"
// @Success 200 {object} model.InvoiceRecordDTO
// @Failure 404 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse "History not configured"
// @Router /v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	record, err := h.service.GetInvoiceByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			respondServiceUnavailable(c, ErrHistoryDisabled)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	var dto model.InvoiceRecordDTO
	dto.FromDomain(record)
	respondOK(c, dto)
}
