package service

import "errors"

// Sentinel errors for the invoice pipeline. The handler maps these onto HTTP
// statuses; anything unrecognized becomes a generic internal error.
var (
	// ErrMissingInvoiceData is a client error: required sections absent.
	ErrMissingInvoiceData = errors.New("missing required invoice data (customerInfo, sellerInfo, orderDetails, items)")

	// ErrRenderFault means the template failed to produce usable markup.
	ErrRenderFault = errors.New("invoice rendering failed")

	// ErrStorageUpload means the PDF could not be persisted to object storage.
	ErrStorageUpload = errors.New("invoice upload failed")

	// ErrMailDispatch means the notification email could not be sent. The
	// artifact is already in storage when this occurs, but the caller-visible
	// contract is "invoice delivered", so it is fatal for the request.
	ErrMailDispatch = errors.New("invoice notification failed")

	// ErrHistoryDisabled is returned by history operations when no database
	// is configured.
	ErrHistoryDisabled = errors.New("invoice history is not configured")
)
