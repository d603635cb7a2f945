package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstcore/internal/domain"
	"gstcore/internal/handler"
	"gstcore/internal/service"
	"gstcore/mocks"
)

func newInvoiceNumberHandler() (*handler.InvoiceNumberHandler, *mocks.MockNumberingService) {
	mockSvc := new(mocks.MockNumberingService)
	return handler.NewInvoiceNumberHandler(mockSvc), mockSvc
}

func get(path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, path, http.NoBody)
	return c, w
}

var march15 = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

// --- Next ---

func TestInvoiceNumberHandler_Next(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Preview", mock.Anything, march15).
		Return(&domain.NumberPreview{Series: "default", Sequence: 7, InvoiceNumber: "INV-2024-000007"}, nil)

	c, w := get("/api/v1/invoice-numbers/next?date=2024-03-15")
	h.Next(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-2024-000007")
	mockSvc.AssertExpectations(t)
}

func TestInvoiceNumberHandler_Next_DefaultDate(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Preview", mock.Anything, time.Time{}).
		Return(&domain.NumberPreview{InvoiceNumber: "INV-2026-000001"}, nil)

	c, w := get("/api/v1/invoice-numbers/next")
	h.Next(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceNumberHandler_Next_BadDate(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()

	c, w := get("/api/v1/invoice-numbers/next?date=15/03/2024")
	h.Next(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Preview", mock.Anything, mock.Anything)
}

// --- Issue ---

func TestInvoiceNumberHandler_Issue_Generated(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	seq := int64(7)
	mockSvc.On("Issue", mock.Anything, march15).Return(&domain.IssuedNumber{
		InvoiceNumber: "INV-2024-000007",
		Sequence:      &seq,
		Source:        domain.NumberSourceGenerated,
	}, nil)

	c, w := postJSON("/api/v1/invoice-numbers", `{"date":"2024-03-15"}`)
	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"generated"`)
	mockSvc.AssertNotCalled(t, "IssueManual", mock.Anything, mock.Anything)
}

func TestInvoiceNumberHandler_Issue_EmptyBody(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Issue", mock.Anything, time.Time{}).Return(&domain.IssuedNumber{InvoiceNumber: "INV-2026-000001"}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoice-numbers", http.NoBody)
	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceNumberHandler_Issue_Manual(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("IssueManual", mock.Anything, service.IssueManualInput{InvoiceNumber: "BPH/24/77"}).
		Return(&domain.IssuedNumber{InvoiceNumber: "BPH/24/77", Source: domain.NumberSourceManual}, nil)

	c, w := postJSON("/api/v1/invoice-numbers", `{"manual_number":"BPH/24/77"}`)
	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestInvoiceNumberHandler_Issue_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"duplicate", domain.ErrDuplicateInvoiceNumber, http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"invalid", errors.Join(domain.ErrInvalidInvoiceNumber, errors.New("too long")), http.StatusBadRequest, "INVALID_INVOICE_NUMBER"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newInvoiceNumberHandler()
			mockSvc.On("IssueManual", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := postJSON("/api/v1/invoice-numbers", `{"manual_number":"X-1"}`)
			h.Issue(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
		})
	}
}

// --- Check ---

func TestInvoiceNumberHandler_Check(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Check", mock.Anything, "INV-1").Return(domain.ErrDuplicateInvoiceNumber)
	mockSvc.On("Check", mock.Anything, "INV-2").Return(nil)

	for number, available := range map[string]bool{"INV-1": false, "INV-2": true} {
		c, w := get("/api/v1/invoice-numbers/check?number=" + number)
		h.Check(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data handler.AvailabilityResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, available, body.Data.Available, number)
		assert.Equal(t, number, body.Data.InvoiceNumber)
	}
}

func TestInvoiceNumberHandler_Check_Blank(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Check", mock.Anything, "").Return(domain.ErrInvalidInvoiceNumber)

	c, w := get("/api/v1/invoice-numbers/check")
	h.Check(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Lookup ---

func TestInvoiceNumberHandler_Lookup(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("Get", mock.Anything, "bph/24/0077").
		Return(&domain.IssuedNumber{InvoiceNumber: "BPH/24/0077", Source: domain.NumberSourceManual}, nil)
	mockSvc.On("Get", mock.Anything, "INV-404").Return(nil, domain.ErrNotFound)

	c, w := get("/api/v1/invoice-numbers/lookup?number=bph/24/0077")
	h.Lookup(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data domain.IssuedNumber `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "BPH/24/0077", body.Data.InvoiceNumber)

	c, w = get("/api/v1/invoice-numbers/lookup?number=INV-404")
	h.Lookup(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- List ---

func TestInvoiceNumberHandler_List(t *testing.T) {
	h, mockSvc := newInvoiceNumberHandler()
	mockSvc.On("List", mock.Anything, 0, 20).
		Return([]domain.IssuedNumber{{InvoiceNumber: "INV-2024-000001"}}, 1, nil)

	c, w := get("/api/v1/invoice-numbers?limit=500")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
}
