package render

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single print job. Only the external
// browser collaborator gets a timeout; in-process rendering is
// synchronous and unbounded by design.
const DefaultPDFTimeout = 30 * time.Second

// A4 paper size in inches for PrintToPDF.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// PDFOptions configures the headless browser used for pagination.
type PDFOptions struct {
	Timeout time.Duration
	// NoSandbox runs Chrome without sandbox (required for Docker/root).
	NoSandbox bool
}

// DefaultPDFOptions returns sensible defaults for local use.
func DefaultPDFOptions() *PDFOptions {
	return &PDFOptions{Timeout: DefaultPDFTimeout, NoSandbox: true}
}

// RenderPDF prints a styled HTML document to a fixed-page-size PDF via
// headless Chrome. Pagination itself is the browser's concern; this
// function only hands it the styled document and collects the pages.
// Requires Chrome/Chromium to be installed on the system.
func RenderPDF(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultPDFOptions()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "PDF printing failed", Cause: err}
	}
	return pdf, nil
}
