package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gstcore/internal/export"
	"gstcore/internal/money"
	"gstcore/internal/service"
	"gstcore/internal/words"
)

// TotalsHandler handles invoice pricing endpoints.
type TotalsHandler struct {
	quoteService service.QuoteService
}

// NewTotalsHandler creates a new TotalsHandler.
func NewTotalsHandler(quoteService service.QuoteService) *TotalsHandler {
	return &TotalsHandler{quoteService: quoteService}
}

// Compute handles POST /api/v1/totals
// @Summary Compute invoice totals
// @Description Price an invoice draft: per-row values, CGST/SGST/IGST split, round-off, discount, settlement and amount in words
// @Tags totals
// @Accept json
// @Produce json
// @Param request body service.QuoteInput true "Invoice draft"
// @Success 200 {object} Response{data=service.Quote} "Priced invoice"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Router /totals [post]
func (h *TotalsHandler) Compute(c *gin.Context) {
	var input service.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quote)
}

// Words handles GET /api/v1/words
// @Summary Amount in words
// @Description Spell an amount in the Indian numbering system, rounded to the rupee
// @Tags totals
// @Produce json
// @Param amount query string true "Amount in rupees" example(1180.50)
// @Success 200 {object} Response{data=WordsResponse} "Amount in words"
// @Failure 400 {object} ErrorResponseBody "Missing amount"
// @Router /words [get]
func (h *TotalsHandler) Words(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("amount"))
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount is required")
		return
	}

	amount := money.Parse(raw)
	RespondOK(c, WordsResponse{
		Amount: amount.StringFixed(2),
		Words:  words.AmountToWords(amount),
		Rupees: words.Rupees(amount),
	})
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv; charset=utf-8",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

// Export handles POST /api/v1/totals/export
// @Summary Export a priced invoice draft
// @Description Price a draft and download the breakdown as CSV, XLSX or PDF
// @Tags totals
// @Accept json
// @Produce application/pdf
// @Param format query string false "csv, xlsx or pdf" default(xlsx)
// @Param name query string false "Document name used for the title and filename"
// @Param invoice_number query string false "Invoice number printed on the PDF"
// @Param request body service.QuoteInput true "Invoice draft"
// @Success 200 {file} file "Exported document"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Router /totals/export [post]
func (h *TotalsHandler) Export(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "xlsx")))
	contentType, ok := exportContentTypes[format]
	if !ok {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be one of csv, xlsx, pdf")
		return
	}

	var input service.QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	now := time.Now()
	name := strings.TrimSpace(c.DefaultQuery("name", "invoice"))
	var buf bytes.Buffer
	switch format {
	case "csv":
		err = export.WriteCSV(&buf, quote.Result)
	case "xlsx":
		err = export.WriteXLSX(&buf, quote.Result, name)
	case "pdf":
		err = export.WritePDF(&buf, quote.Result, export.PDFHeader{
			Title:         name,
			InvoiceNumber: c.Query("invoice_number"),
			IssuedOn:      now.Format(dateLayout),
			Seller:        quote.Seller.String(),
			Buyer:         quote.Buyer.String(),
			AmountInWords: quote.AmountInWords,
		})
	}
	if err != nil {
		HandleError(c, fmt.Errorf("export %s: %w", format, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.BuildFilename(name, format, now)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
