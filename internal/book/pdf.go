// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package book

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"chronicle/internal/models"
)

// pdfTimeout bounds one print run, browser launch included.
const pdfTimeout = 2 * time.Minute

// PDFProducer prints rendered book HTML to PDF through headless Chrome.
// A browser is launched and torn down per call; there is no pooling.
type PDFProducer struct {
	chromePath string
}

// NewPDFProducer creates a producer. chromePath may be empty, in which case
// chromedp locates a browser on PATH.
func NewPDFProducer(chromePath string) *PDFProducer {
	return &PDFProducer{chromePath: chromePath}
}

// Print loads the HTML document and exports it as PDF bytes using the page
// geometry for the options' page size. The browser is released on return,
// success or failure.
func (p *PDFProducer) Print(ctx context.Context, html string, opts *models.BookCompilationOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if p.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	geo := GeometryFor(opts.PageSize)
	// PrintToPDF takes paper dimensions in inches.
	paperWidth := geo.WidthPt / 72
	paperHeight := geo.HeightPt / 72

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(1).
				WithMarginBottom(1).
				WithMarginLeft(0.75).
				WithMarginRight(0.75).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdf, nil
}
