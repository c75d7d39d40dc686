/*
 * PDFPump - Copyright (C) 2024 PDFPump contributors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 2, and only
 * version 2 as published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 59 Temple Place, Suite 330, Boston, MA  02111-1307  USA
 */

package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	log "github.com/sirupsen/logrus"
)

// Hard bound on a single render. wkhtmltopdf can hang forever on
// pathological pages, and one stuck message must not stall the run
// loop.
const renderTimeout = 90 * time.Second

// WKHTMLToPDF renders HTML via the wkhtmltopdf binary. Options are
// immutable after construction, so a single instance is safe to share.
type WKHTMLToPDF struct {
	opts *Options
}

func NewWKHTMLToPDF(opts *Options) *WKHTMLToPDF {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &WKHTMLToPDF{opts: opts}
}

func (r *WKHTMLToPDF) Render(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}

	r.applyGlobal(pdfg)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	r.applyPage(page)
	pdfg.AddPage(page)

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	start := time.Now()
	if err := pdfg.CreateContext(ctx); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("render timed out after %v: %w", renderTimeout, ctx.Err())
		}

		return nil, fmt.Errorf("render: %w", err)
	}

	log.WithFields(log.Fields{
		"bytes":    len(pdfg.Bytes()),
		"duration": time.Since(start),
	}).Trace("render_complete")

	return pdfg.Bytes(), nil
}

func (r *WKHTMLToPDF) applyGlobal(pdfg *wkhtmltopdf.PDFGenerator) {
	opts := r.opts

	if opts.PageSize != "" {
		pdfg.PageSize.Set(opts.PageSize)
	}
	if opts.Orientation != "" {
		pdfg.Orientation.Set(opts.Orientation)
	}
	if opts.MarginTop != nil {
		pdfg.MarginTop.Set(*opts.MarginTop)
	}
	if opts.MarginBottom != nil {
		pdfg.MarginBottom.Set(*opts.MarginBottom)
	}
	if opts.MarginLeft != nil {
		pdfg.MarginLeft.Set(*opts.MarginLeft)
	}
	if opts.MarginRight != nil {
		pdfg.MarginRight.Set(*opts.MarginRight)
	}
	if opts.DPI != nil {
		pdfg.Dpi.Set(*opts.DPI)
	}
	if opts.Grayscale {
		pdfg.Grayscale.Set(true)
	}
	if opts.Title != "" {
		pdfg.Title.Set(opts.Title)
	}
}

func (r *WKHTMLToPDF) applyPage(page *wkhtmltopdf.PageReader) {
	opts := r.opts

	if opts.Zoom != nil {
		page.Zoom.Set(*opts.Zoom)
	}
	if opts.Encoding != "" {
		page.Encoding.Set(opts.Encoding)
	}
	if opts.NoImages {
		page.NoImages.Set(true)
	}
	if opts.DisableJavascript {
		page.DisableJavascript.Set(true)
	}
	if opts.JavascriptDelay != nil {
		page.JavascriptDelay.Set(*opts.JavascriptDelay)
	}
	if opts.LoadErrorHandling != "" {
		page.LoadErrorHandling.Set(opts.LoadErrorHandling)
	}
	if opts.LoadMediaErrorHandling != "" {
		page.LoadMediaErrorHandling.Set(opts.LoadMediaErrorHandling)
	}
}
