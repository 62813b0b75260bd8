package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFRenderer turns a self-contained HTML page into a PDF document
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromePDFRenderer prints pages with a headless Chrome started per render
type ChromePDFRenderer struct {
	chromePath string
}

// NewChromePDFRenderer creates a renderer. An empty path uses chromedp's
// own browser lookup.
func NewChromePDFRenderer(chromePath string) *ChromePDFRenderer {
	return &ChromePDFRenderer{chromePath: strings.TrimSpace(chromePath)}
}

// Render loads html into a blank page and prints it with CSS page sizing.
// The caller bounds the render through ctx.
func (r *ChromePDFRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var pdf []byte
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("print pdf: empty document")
	}
	return pdf, nil
}
