package docsmith

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestPDFOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PDFOptions)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*PDFOptions) {}},
		{name: "uppercase format accepted", mutate: func(o *PDFOptions) { o.Format = "A4" }},
		{name: "letter format", mutate: func(o *PDFOptions) { o.Format = FormatLetter }},
		{name: "minimum scale", mutate: func(o *PDFOptions) { o.Scale = MinScale }},
		{name: "maximum scale", mutate: func(o *PDFOptions) { o.Scale = MaxScale }},
		{
			name:    "unknown format",
			mutate:  func(o *PDFOptions) { o.Format = "a6" },
			wantErr: "format",
		},
		{
			name:    "scale too small",
			mutate:  func(o *PDFOptions) { o.Scale = 0.05 },
			wantErr: "scale",
		},
		{
			name:    "scale too large",
			mutate:  func(o *PDFOptions) { o.Scale = 2.1 },
			wantErr: "scale",
		},
		{
			name:    "margin without unit",
			mutate:  func(o *PDFOptions) { o.MarginTop = "1" },
			wantErr: "margin_top",
		},
		{
			name:    "negative margin",
			mutate:  func(o *PDFOptions) { o.MarginLeft = "-1cm" },
			wantErr: "margin_left",
		},
		{
			name:    "empty margin",
			mutate:  func(o *PDFOptions) { o.MarginBottom = "" },
			wantErr: "margin_bottom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultPDFOptions()
			tt.mutate(opts)
			err := opts.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("error = %v, want ErrInvalidOptions", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDocxOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*DocxOptions)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*DocxOptions) {}},
		{name: "landscape", mutate: func(o *DocxOptions) { o.Orientation = OrientationLandscape }},
		{name: "case-insensitive orientation", mutate: func(o *DocxOptions) { o.Orientation = "LANDSCAPE" }},
		{name: "zero margin", mutate: func(o *DocxOptions) { o.MarginTop = 0 }},
		{name: "maximum margin", mutate: func(o *DocxOptions) { o.MarginRight = MaxDocxMarginTwips }},
		{
			name:    "unknown orientation",
			mutate:  func(o *DocxOptions) { o.Orientation = "sideways" },
			wantErr: "orientation",
		},
		{
			name:    "negative margin",
			mutate:  func(o *DocxOptions) { o.MarginBottom = -1 },
			wantErr: "margin_bottom",
		},
		{
			name:    "margin too large",
			mutate:  func(o *DocxOptions) { o.MarginLeft = MaxDocxMarginTwips + 1 },
			wantErr: "margin_left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultDocxOptions()
			tt.mutate(opts)
			err := opts.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("error = %v, want ErrInvalidOptions", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDocxOptionsHasMetadata(t *testing.T) {
	t.Parallel()

	if DefaultDocxOptions().HasMetadata() {
		t.Error("defaults should have no metadata")
	}
	opts := DefaultDocxOptions()
	opts.Keywords = "go"
	if !opts.HasMetadata() {
		t.Error("keywords should count as metadata")
	}
}

func TestParseCSSLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "1in", want: 1},
		{input: "2.54cm", want: 1},
		{input: "25.4mm", want: 1},
		{input: "96px", want: 1},
		{input: "1cm", want: 1 / 2.54},
		{input: " 0.5IN ", want: 0.5},
		{input: "0cm", want: 0},
		{input: "", wantErr: true},
		{input: "1", wantErr: true},
		{input: "abccm", wantErr: true},
		{input: "-1cm", wantErr: true},
		{input: "1em", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseCSSLength(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCSSLength(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCSSLength(%q) error = %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseCSSLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPDFOptionsPaper(t *testing.T) {
	t.Parallel()

	portrait := &PDFOptions{Format: FormatA4}
	w, h := portrait.paper()
	if w != 8.27 || h != 11.7 {
		t.Errorf("a4 portrait = %vx%v, want 8.27x11.7", w, h)
	}

	landscape := &PDFOptions{Format: FormatA4, Landscape: true}
	w, h = landscape.paper()
	if w != 11.7 || h != 8.27 {
		t.Errorf("a4 landscape = %vx%v, want 11.7x8.27", w, h)
	}
}

func TestMarkdownOptionsValidate(t *testing.T) {
	t.Parallel()

	var nilOpts *MarkdownOptions
	if err := nilOpts.Validate(); err != nil {
		t.Errorf("nil options Validate() = %v, want nil", err)
	}

	bad := &MarkdownOptions{Policy: &SanitizePolicy{AllowedClasses: []string{"["}}}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("bad pattern error = %v, want ErrInvalidOptions", err)
	}
}

func TestWithLoadTimeoutPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithLoadTimeout(0) should panic")
		}
	}()
	WithLoadTimeout(0)
}
