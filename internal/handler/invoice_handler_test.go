package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/invoice-delivery-service/internal/domain"
	"github.com/salonhq/invoice-delivery-service/internal/pdf"
	"github.com/salonhq/invoice-delivery-service/internal/service"
)

// mockInvoiceService implements service.InvoiceService for handler tests.
type mockInvoiceService struct {
	generateURL string
	generateErr error
	generated   int
	listResult  *domain.PaginatedInvoices
	listErr     error
	getResult   *domain.InvoiceRecord
	getErr      error
}

func (m *mockInvoiceService) GenerateInvoice(ctx context.Context, invoice *domain.Invoice) (string, error) {
	m.generated++
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.generateURL, nil
}

func (m *mockInvoiceService) GetInvoiceByID(ctx context.Context, id string) (*domain.InvoiceRecord, error) {
	return m.getResult, m.getErr
}

func (m *mockInvoiceService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) (*domain.PaginatedInvoices, error) {
	return m.listResult, m.listErr
}

func setupRouter(svc service.InvoiceService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewInvoiceHandler(svc).RegisterRoutes(router)
	return router
}

func validRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"customerInfo": map[string]interface{}{"name": "Jane Doe"},
		"sellerInfo":   map[string]interface{}{"name": "Acme Salon"},
		"orderDetails": map[string]interface{}{"id": "ORD-1"},
		"items": []map[string]interface{}{
			{"description": "Haircut", "qty": 1, "price": 500},
		},
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateInvoiceSuccess(t *testing.T) {
	svc := &mockInvoiceService{
		generateURL: "https://invoices-bucket.s3.example.com/invoices/1756700000-Jane_Doe.pdf",
	}
	router := setupRouter(svc)

	w := postJSON(t, router, "/v1/invoices/generate", validRequestBody())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success   bool   `json:"success"`
		PublicURL string `json:"publicUrl"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, svc.generateURL, resp.PublicURL)
	assert.Equal(t, 1, svc.generated)
}

func TestGenerateInvoiceMissingFields(t *testing.T) {
	required := []string{"customerInfo", "sellerInfo", "orderDetails", "items"}

	for _, field := range required {
		t.Run("missing "+field, func(t *testing.T) {
			svc := &mockInvoiceService{}
			router := setupRouter(svc)

			body := validRequestBody()
			delete(body, field)

			w := postJSON(t, router, "/v1/invoices/generate", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, MsgMissingInvoiceData, resp.Message)

			// Validation must reject before the pipeline runs.
			assert.Equal(t, 0, svc.generated)
		})
	}
}

func TestGenerateInvoiceEmptyItems(t *testing.T) {
	svc := &mockInvoiceService{}
	router := setupRouter(svc)

	body := validRequestBody()
	body["items"] = []map[string]interface{}{}

	w := postJSON(t, router, "/v1/invoices/generate", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.generated)
}

func TestGenerateInvoiceMalformedJSON(t *testing.T) {
	router := setupRouter(&mockInvoiceService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/invoices/generate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGenerateInvoicePipelineFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "root element not found",
			err:         fmt.Errorf("%w: selector %q", pdf.ErrRootNotFound, "#invoice-root"),
			wantMessage: "Invoice rendering failed.",
		},
		{
			name:        "browser launch failure",
			err:         fmt.Errorf("%w: exec not found", pdf.ErrBrowserLaunch),
			wantMessage: "Invoice PDF generation failed.",
		},
		{
			name:        "storage failure",
			err:         fmt.Errorf("%w: bucket unavailable", service.ErrStorageUpload),
			wantMessage: "Invoice upload failed.",
		},
		{
			name:        "mail failure",
			err:         fmt.Errorf("%w: connection refused", service.ErrMailDispatch),
			wantMessage: "Invoice notification failed.",
		},
		{
			name:        "unclassified failure does not leak internals",
			err:         fmt.Errorf("pgx: connection to 10.0.0.3 refused"),
			wantMessage: "Invoice generation failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockInvoiceService{generateErr: tt.err}
			router := setupRouter(svc)

			w := postJSON(t, router, "/v1/invoices/generate", validRequestBody())

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var resp struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestListInvoices(t *testing.T) {
	svc := &mockInvoiceService{
		listResult: &domain.PaginatedInvoices{
			Records: []domain.InvoiceRecord{
				{
					ID:           "rec-1",
					CustomerName: "Jane Doe",
					OrderID:      "ORD-1",
					StorageKey:   "invoices/1756700000-Jane_Doe.pdf",
					PublicURL:    "https://invoices-bucket.s3.example.com/invoices/1756700000-Jane_Doe.pdf",
					CreatedAt:    time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
				},
			},
			TotalItems:  1,
			TotalPages:  1,
			CurrentPage: 1,
			Limit:       20,
		},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/invoices", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), `"totalItems":1`)
}

func TestListInvoicesInvalidPagination(t *testing.T) {
	router := setupRouter(&mockInvoiceService{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/invoices?page=0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListInvoicesHistoryDisabled(t *testing.T) {
	svc := &mockInvoiceService{listErr: service.ErrHistoryDisabled}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/invoices", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc := &mockInvoiceService{getErr: fmt.Errorf("invoice record not found: rec-9")}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/invoices/rec-9", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
