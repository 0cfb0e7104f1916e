package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Media is the declared type of an uploaded document.
type Media string

const (
	MediaPDF  Media = "pdf"
	MediaText Media = "text"
)

// Error reports that no extraction strategy could produce text from the
// document. Errs holds one entry per attempted strategy.
type Error struct {
	Media Media
	Errs  []error
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("extracting text from %s document: %s", e.Media, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() []error { return e.Errs }

// Result is the outcome of a successful extraction, tagged with the engine
// that produced the text.
type Result struct {
	Text   string
	Engine string
}

// Extractor converts uploaded documents into plain text. PDF engines are
// tried in order; the first one that does not fail wins.
type Extractor struct {
	engines []pdfEngine
}

// New returns an extractor with the text-layer reader first and the fitz
// renderer as the fallback.
func New() *Extractor {
	return &Extractor{engines: []pdfEngine{textLayerEngine{}, fitzEngine{}}}
}

// MediaForFile maps a file name to its media type. Only the .pdf extension
// selects the PDF path; everything else is read as plain text.
func MediaForFile(name string) Media {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return MediaPDF
	}
	return MediaText
}

// Extract converts the document bytes into trimmed text according to the
// declared media type.
func (e *Extractor) Extract(media Media, data []byte) (*Result, error) {
	if media == MediaPDF {
		return e.FromPDF(data)
	}
	return e.FromText(data)
}

// FromText decodes the bytes as UTF-8 and trims surrounding whitespace.
func (e *Extractor) FromText(data []byte) (*Result, error) {
	if !utf8.Valid(data) {
		return nil, &Error{Media: MediaText, Errs: []error{fmt.Errorf("document is not valid UTF-8")}}
	}
	return &Result{Text: strings.TrimSpace(string(data)), Engine: "text"}, nil
}

// FromPDF runs the configured PDF engines in order and returns the first
// successful result, trimmed. A page without extractable text contributes
// nothing; only an engine-level failure moves on to the next engine. When
// every engine fails the returned Error carries all of their failures.
func (e *Extractor) FromPDF(data []byte) (*Result, error) {
	errs := make([]error, 0, len(e.engines))
	for _, engine := range e.engines {
		text, err := runEngine(engine, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", engine.Name(), err))
			continue
		}
		return &Result{Text: strings.TrimSpace(text), Engine: engine.Name()}, nil
	}
	return nil, &Error{Media: MediaPDF, Errs: errs}
}

// runEngine contains engine panics; the text-layer reader panics on some
// malformed files instead of returning an error.
func runEngine(engine pdfEngine, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return engine.Extract(data)
}
