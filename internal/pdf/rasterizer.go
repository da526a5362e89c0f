package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Rasterizer converts a fully assembled HTML document into single-page PDF
// bytes. rootSelector names the element that must exist after load; its
// absence means the template failed to produce the expected structure.
type Rasterizer interface {
	RasterizePDF(ctx context.Context, htmlContent, rootSelector string) ([]byte, error)
}

// Compile-time interface check
var _ Rasterizer = (*RodRasterizer)(nil)

// A4 page dimensions in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// defaultSettleDelay is the grace period after the network-idle signal. Font
// loading and layout reflow can lag behind network idle; rasterizing too
// early produces PDFs with missing fonts or unreflowed layout.
const defaultSettleDelay = 500 * time.Millisecond

// RodRasterizer implements Rasterizer using headless Chrome via go-rod.
// Each invocation launches its own disposable browser; instances are never
// pooled or reused across requests.
type RodRasterizer struct {
	launcher    BrowserLauncher
	settleDelay time.Duration
}

// NewRodRasterizer creates a RodRasterizer with the given launcher strategy.
func NewRodRasterizer(launcher BrowserLauncher) *RodRasterizer {
	return &RodRasterizer{
		launcher:    launcher,
		settleDelay: defaultSettleDelay,
	}
}

// RasterizePDF loads the HTML into a fresh browser, waits for the document to
// settle, verifies the root element exists, and exports page 1 as an A4 PDF
// with zero margins and printed backgrounds. The browser is closed on every
// exit path.
func (r *RodRasterizer) RasterizePDF(ctx context.Context, htmlContent, rootSelector string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.launcher.Launch()
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	pdfBytes, err := r.render(ctx, browser.Context(ctx), htmlContent, rootSelector)
	if err != nil {
		return nil, err
	}
	return pdfBytes, nil
}

func (r *RodRasterizer) render(ctx context.Context, browser *rod.Browser, htmlContent, rootSelector string) ([]byte, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Network idle alone is not enough: fonts may still be loading and the
	// layout may still reflow. Wait for the explicit fonts-ready signal, then
	// a short grace delay.
	if err := page.WaitIdle(r.settleDelay * 10); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if _, err := page.Eval(`() => document.fonts.ready.then(() => true)`); err != nil {
		return nil, fmt.Errorf("%w: waiting for fonts: %v", ErrPageLoad, err)
	}

	select {
	case <-time.After(r.settleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// The root element must exist after load. If the template failed to
	// produce it, rasterizing would only yield a blank or broken document.
	found, _, err := page.Has(rootSelector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: selector %q", ErrRootNotFound, rootSelector)
	}

	// Screen media preserves on-screen color and style fidelity instead of
	// browser print-stylesheet overrides.
	if err := (proto.EmulationSetEmulatedMedia{Media: "screen"}).Call(page); err != nil {
		return nil, fmt.Errorf("%w: emulating screen media: %v", ErrPDFExport, err)
	}

	reader, err := page.PDF(buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFExport, err)
	}

	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFExport, err)
	}

	return pdfBytes, nil
}

// buildPDFOptions constructs the export options: exactly page 1, A4 portrait,
// zero margins, printed backgrounds, CSS page size preferred, no header or
// footer furniture.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(paperWidthInches),
		PaperHeight:       floatPtr(paperHeightInches),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PageRanges:        "1",
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
