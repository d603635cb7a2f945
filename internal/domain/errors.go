package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidInvoiceNumber   = errors.New("invalid invoice number")
	ErrInvalidTemplate        = errors.New("invalid invoice number template")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrConflict               = errors.New("concurrent update conflict")
)
