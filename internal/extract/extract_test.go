package extract

import (
	"errors"
	"strings"
	"testing"
)

type stubEngine struct {
	name  string
	text  string
	err   error
	panic bool

	calls int
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Extract(_ []byte) (string, error) {
	s.calls++
	if s.panic {
		panic("malformed xref table")
	}
	return s.text, s.err
}

func TestFromTextTrims(t *testing.T) {
	extractor := New()

	result, err := extractor.FromText([]byte("  5 years Python\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "5 years Python" {
		t.Fatalf("expected trimmed text, got %q", result.Text)
	}

	if result.Engine != "text" {
		t.Fatalf("unexpected engine tag: %q", result.Engine)
	}
}

func TestFromTextRejectsInvalidUTF8(t *testing.T) {
	extractor := New()

	_, err := extractor.FromText([]byte{0xff, 0xfe, 0xfd})

	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *Error, got %v", err)
	}

	if extractErr.Media != MediaText {
		t.Fatalf("expected text media in error, got %q", extractErr.Media)
	}
}

func TestMediaForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		expect Media
	}{
		{name: "pdf extension", file: "resume.pdf", expect: MediaPDF},
		{name: "uppercase pdf extension", file: "RESUME.PDF", expect: MediaPDF},
		{name: "txt extension", file: "resume.txt", expect: MediaText},
		{name: "no extension", file: "resume", expect: MediaText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MediaForFile(tt.file); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestFromPDFUsesFallbackWhenPrimaryFails(t *testing.T) {
	primary := &stubEngine{name: "primary", err: errors.New("unsupported stream")}
	fallback := &stubEngine{name: "fallback", text: "  extracted text  "}
	extractor := &Extractor{engines: []pdfEngine{primary, fallback}}

	result, err := extractor.FromPDF([]byte("%PDF-"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected both engines attempted, got %d and %d calls", primary.calls, fallback.calls)
	}

	if result.Engine != "fallback" {
		t.Fatalf("expected fallback engine tag, got %q", result.Engine)
	}

	if result.Text != "extracted text" {
		t.Fatalf("expected trimmed fallback text, got %q", result.Text)
	}
}

func TestFromPDFPrimarySuccessSkipsFallback(t *testing.T) {
	primary := &stubEngine{name: "primary", text: ""}
	fallback := &stubEngine{name: "fallback", text: "never used"}
	extractor := &Extractor{engines: []pdfEngine{primary, fallback}}

	// An empty text layer is still a successful extraction; the fallback
	// only runs when the primary errors.
	result, err := extractor.FromPDF(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Engine != "primary" {
		t.Fatalf("expected primary engine tag, got %q", result.Engine)
	}

	if fallback.calls != 0 {
		t.Fatalf("expected fallback to be skipped, got %d calls", fallback.calls)
	}
}

func TestFromPDFAllEnginesFail(t *testing.T) {
	primary := &stubEngine{name: "primary", err: errors.New("broken")}
	fallback := &stubEngine{name: "fallback", err: errors.New("also broken")}
	extractor := &Extractor{engines: []pdfEngine{primary, fallback}}

	_, err := extractor.FromPDF(nil)

	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *Error, got %v", err)
	}

	if len(extractErr.Errs) != 2 {
		t.Fatalf("expected both engine failures recorded, got %d", len(extractErr.Errs))
	}

	msg := extractErr.Error()
	if !strings.Contains(msg, "primary") || !strings.Contains(msg, "fallback") {
		t.Fatalf("expected both engine names in error, got %q", msg)
	}
}

func TestFromPDFContainsEnginePanic(t *testing.T) {
	primary := &stubEngine{name: "primary", panic: true}
	fallback := &stubEngine{name: "fallback", text: "recovered"}
	extractor := &Extractor{engines: []pdfEngine{primary, fallback}}

	result, err := extractor.FromPDF(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "recovered" {
		t.Fatalf("expected fallback text after contained panic, got %q", result.Text)
	}
}

func TestExtractDispatchesOnMedia(t *testing.T) {
	extractor := New()

	result, err := extractor.Extract(MediaText, []byte("plain"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "plain" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}
