package document

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// US Letter, used when a page carries no readable MediaBox
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

func extractPDF(data []byte) (doc *Document, err error) {
	// the parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: malformed PDF: %v", ErrUnsupportedDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
	}

	doc = &Document{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read text of page %d: %w", i, err)
		}

		p := Page{Number: i, Text: Normalize(text)}
		width, height := pageSize(page)
		if region, ok := DiagramRegion(width, height, pageElements(page)); ok {
			p.Diagram = &region
		}
		doc.Pages = append(doc.Pages, p)
	}

	return doc, nil
}

// pageElements collects the bounding boxes of the page's drawn rectangles
func pageElements(page pdf.Page) []Box {
	rects := page.Content().Rect
	boxes := make([]Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, Box{
			X0: min(r.Min.X, r.Max.X),
			Y0: min(r.Min.Y, r.Max.Y),
			X1: max(r.Min.X, r.Max.X),
			Y1: max(r.Min.Y, r.Max.Y),
		})
	}
	return boxes
}

func pageSize(page pdf.Page) (float64, float64) {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
	}
	return defaultPageWidth, defaultPageHeight
}
