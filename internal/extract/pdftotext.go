package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// bbox output of `pdftotext -bbox`: an XHTML wrapper around <doc>/<page>/<word>
// elements, word coordinates measured from the top-left page corner.
type bboxDoc struct {
	Pages []bboxPage `xml:"body>doc>page"`
}

type bboxPage struct {
	Width  float64    `xml:"width,attr"`
	Height float64    `xml:"height,attr"`
	Words  []bboxWord `xml:"word"`
}

type bboxWord struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
	Text string  `xml:",chardata"`
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (entity.Document, error) {
	// pdftotext -bbox -enc UTF-8 <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-bbox", "-enc", "UTF-8", path, "-")
	if err != nil {
		return entity.Document{}, fmt.Errorf("pdftotext: %w (%s)", err, truncate(string(errb), 512))
	}

	dec := xml.NewDecoder(bytes.NewReader(out))
	dec.Strict = false
	var parsed bboxDoc
	if err := dec.Decode(&parsed); err != nil {
		return entity.Document{}, fmt.Errorf("parse bbox output: %w", err)
	}

	pages := parsed.Pages
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}

	doc := entity.Document{Path: path, Pages: make([]entity.Page, 0, len(pages))}
	for i, p := range pages {
		page := entity.Page{Number: i + 1, Tokens: make([]entity.PositionedToken, 0, len(p.Words))}
		for _, w := range p.Words {
			// Flip into PDF user space: poppler reports yMin from the top of
			// the page, downstream ordering expects Y to grow upward.
			page.Tokens = append(page.Tokens, entity.PositionedToken{
				Text:  w.Text,
				X:     w.XMin,
				Y:     p.Height - w.YMax,
				Width: w.XMax - w.XMin,
			})
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
