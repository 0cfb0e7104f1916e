package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

type pdfEngine interface {
	Name() string
	Extract(data []byte) (string, error)
}

// textLayerEngine reads the PDF text layer page by page.
type textLayerEngine struct{}

func (textLayerEngine) Name() string { return "text-layer" }

func (textLayerEngine) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page without a readable text layer contributes nothing.
			continue
		}

		builder.WriteString(text)
	}

	return builder.String(), nil
}

// fitzEngine renders the document with MuPDF and collects per-page text. It
// handles files whose text layer the primary engine cannot read.
type fitzEngine struct{}

func (fitzEngine) Name() string { return "fitz" }

func (fitzEngine) Extract(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var builder strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			continue
		}

		builder.WriteString(text)
	}

	return builder.String(), nil
}
