package pdf

import "errors"

// Sentinel errors for browser automation.
var (
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageCreate    = errors.New("failed to create browser page")
	ErrPageLoad      = errors.New("failed to load page")
	ErrRootNotFound  = errors.New("invoice root element not found")
	ErrPDFExport     = errors.New("PDF export failed")
)
