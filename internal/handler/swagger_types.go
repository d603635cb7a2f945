package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// IssueInvoiceNumberRequest represents the issue invoice number request body.
// Leave manual_number empty to take the next number in the series.
type IssueInvoiceNumberRequest struct {
	Date         string `json:"date" example:"2024-03-15"`
	ManualNumber string `json:"manual_number" example:"BPH/24/0077"`
}

// --- Response Types ---

// WordsResponse is the amount-in-words payload.
type WordsResponse struct {
	Amount string `json:"amount" example:"1180.00"`
	Words  string `json:"words" example:"One Thousand One Hundred Eighty"`
	Rupees string `json:"rupees" example:"Rupees One Thousand One Hundred Eighty Only"`
}

// AvailabilityResponse reports whether an invoice number is free.
type AvailabilityResponse struct {
	InvoiceNumber string `json:"invoice_number" example:"INV-2024-000042"`
	Available     bool   `json:"available" example:"true"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
