package profilemd

import "errors"

// Sentinel errors for library operations.
var (
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Option validation errors.
	ErrInvalidPDFEngine = errors.New("invalid PDF engine")
	ErrUnknownFormat    = errors.New("unknown export format")

	// Pool errors.
	ErrPoolClosed = errors.New("renderer pool is closed")
)
