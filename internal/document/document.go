// Package document turns uploaded files and web pages into plain text for
// prompt composition.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrUnsupportedDocument = errors.New("unsupported document type")

// Page is the normalized text of one PDF page or spreadsheet sheet
type Page struct {
	Number int
	Text   string

	// Diagram is the detected figure region, nil when none qualifies
	Diagram *Box
}

type Document struct {
	Pages []Page
}

// Text joins every page's text with blank lines
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// PagedText prefixes every non-empty page with a "--- PAGE n ---" header
func (d *Document) PagedText() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		if p.Text == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n--- PAGE %d ---\n%s", p.Number, p.Text)
	}
	return sb.String()
}

// DiagramPages lists the page numbers with a detected figure region
func (d *Document) DiagramPages() []int {
	var pages []int
	for _, p := range d.Pages {
		if p.Diagram != nil {
			pages = append(pages, p.Number)
		}
	}
	return pages
}

// Extract parses data according to its content, falling back to the file
// extension. It returns ctx.Err() if ctx ends before parsing finishes; the
// parser goroutine is left to finish on its own.
func Extract(ctx context.Context, filename string, data []byte) (*Document, error) {
	type outcome struct {
		doc *Document
		err error
	}

	done := make(chan outcome, 1)
	go func() {
		doc, err := extract(filename, data)
		done <- outcome{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.doc, out.err
	}
}

func extract(filename string, data []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return extractPDF(data)
	case bytes.HasPrefix(data, []byte("PK\x03\x04")) && (ext == ".xlsx" || ext == ".xlsm"):
		return extractSpreadsheet(data)
	case ext == ".txt" || ext == ".md" || ext == "":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: text file is not valid UTF-8", ErrUnsupportedDocument)
		}
		return &Document{Pages: []Page{{Number: 1, Text: Normalize(string(data))}}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDocument, ext)
	}
}
