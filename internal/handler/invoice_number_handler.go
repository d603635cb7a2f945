package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gstcore/internal/domain"
	"gstcore/internal/service"
)

const dateLayout = "2006-01-02"

// InvoiceNumberHandler handles invoice numbering endpoints.
type InvoiceNumberHandler struct {
	numberingService service.NumberingService
}

// NewInvoiceNumberHandler creates a new InvoiceNumberHandler.
func NewInvoiceNumberHandler(numberingService service.NumberingService) *InvoiceNumberHandler {
	return &InvoiceNumberHandler{numberingService: numberingService}
}

// Next handles GET /api/v1/invoice-numbers/next
// @Summary Preview the next invoice number
// @Description Show the number the next issue would take. Nothing is reserved.
// @Tags invoice-numbers
// @Produce json
// @Param date query string false "Issue date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} Response{data=domain.NumberPreview} "Next invoice number"
// @Failure 400 {object} ErrorResponseBody "Invalid date"
// @Router /invoice-numbers/next [get]
func (h *InvoiceNumberHandler) Next(c *gin.Context) {
	date, ok := parseDate(c, c.Query("date"))
	if !ok {
		return
	}

	preview, err := h.numberingService.Preview(c.Request.Context(), date)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, preview)
}

// Issue handles POST /api/v1/invoice-numbers
// @Summary Issue an invoice number
// @Description Commit the next number in the series, or a manual number when manual_number is set
// @Tags invoice-numbers
// @Accept json
// @Produce json
// @Param request body IssueInvoiceNumberRequest false "Issue options"
// @Success 201 {object} Response{data=domain.IssuedNumber} "Invoice number issued"
// @Failure 400 {object} ErrorResponseBody "Invalid number or date"
// @Failure 409 {object} ErrorResponseBody "Invoice number already exists"
// @Router /invoice-numbers [post]
func (h *InvoiceNumberHandler) Issue(c *gin.Context) {
	var req IssueInvoiceNumberRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	var (
		issued *domain.IssuedNumber
		err    error
	)
	if strings.TrimSpace(req.ManualNumber) != "" {
		issued, err = h.numberingService.IssueManual(c.Request.Context(), service.IssueManualInput{
			InvoiceNumber: req.ManualNumber,
			IssuedOn:      date,
		})
	} else {
		issued, err = h.numberingService.Issue(c.Request.Context(), date)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, issued)
}

// Check handles GET /api/v1/invoice-numbers/check
// @Summary Check invoice number availability
// @Description Case-insensitive check against every committed invoice number
// @Tags invoice-numbers
// @Produce json
// @Param number query string true "Invoice number"
// @Success 200 {object} Response{data=AvailabilityResponse} "Availability"
// @Failure 400 {object} ErrorResponseBody "Missing number"
// @Router /invoice-numbers/check [get]
func (h *InvoiceNumberHandler) Check(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))

	err := h.numberingService.Check(c.Request.Context(), number)
	switch {
	case err == nil:
		RespondOK(c, AvailabilityResponse{InvoiceNumber: number, Available: true})
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		RespondOK(c, AvailabilityResponse{InvoiceNumber: number, Available: false})
	default:
		HandleError(c, err)
	}
}

// Lookup handles GET /api/v1/invoice-numbers/lookup
// @Summary Get an issued invoice number
// @Tags invoice-numbers
// @Produce json
// @Param number query string true "Invoice number"
// @Success 200 {object} Response{data=domain.IssuedNumber} "Issued number"
// @Failure 404 {object} ErrorResponseBody "Not issued"
// @Router /invoice-numbers/lookup [get]
func (h *InvoiceNumberHandler) Lookup(c *gin.Context) {
	issued, err := h.numberingService.Get(c.Request.Context(), c.Query("number"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, issued)
}

// List handles GET /api/v1/invoice-numbers
// @Summary List issued invoice numbers
// @Tags invoice-numbers
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.IssuedNumber,meta=PagMeta} "Issued numbers"
// @Router /invoice-numbers [get]
func (h *InvoiceNumberHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	numbers, total, err := h.numberingService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, numbers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// parseDate reads a YYYY-MM-DD date. Blank yields the zero time. On failure a
// 400 response is written and ok is false.
func parseDate(c *gin.Context, raw string) (date time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
