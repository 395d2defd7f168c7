package document

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExtract_PlainText(t *testing.T) {
	doc, err := Extract(context.Background(), "notes.txt", []byte("1.  First\n\n\n\n2. Second"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Text != "1. First\n\n2. Second" {
		t.Errorf("Extract() pages = %+v", doc.Pages)
	}
	if got := doc.PagedText(); got != "\n--- PAGE 1 ---\n1. First\n\n2. Second" {
		t.Errorf("PagedText() = %q", got)
	}
}

func TestExtract_Spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "1.")
	f.SetCellValue("Sheet1", "B1", "Capital of Italy?")
	f.SetCellValue("Sheet1", "A2", "2.")
	f.SetCellValue("Sheet1", "B2", "Capital of Spain?")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}

	doc, err := Extract(context.Background(), "paper.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got := Tag(doc.Text()).Count(); got != 2 {
		t.Errorf("tagged questions = %d, want 2 (text %q)", got, doc.Text())
	}
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract(context.Background(), "image.png", []byte("\x89PNG\r\n"))
	if !errors.Is(err, ErrUnsupportedDocument) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedDocument", err)
	}

	_, err = Extract(context.Background(), "broken.pdf", []byte("%PDF-1.4 garbage"))
	if !errors.Is(err, ErrUnsupportedDocument) {
		t.Errorf("Extract() broken pdf error = %v, want ErrUnsupportedDocument", err)
	}
}

func TestExtract_ContextExpired(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := Extract(ctx, "notes.txt", []byte("text"))
	// the parse may win the race; only a context error is acceptable otherwise
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Extract() error = %v", err)
	}
}
