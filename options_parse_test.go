package docsmith

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMarkdownHTMLOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil map yields defaults", func(t *testing.T) {
		t.Parallel()

		md, wrap, err := ParseMarkdownHTMLOptions(nil)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if !md.GFM {
			t.Error("GFM should default to true")
		}
		if md.Breaks || md.Strict || md.Sanitize {
			t.Error("breaks, strict and sanitize should default to false")
		}
		if wrap.FullDocument {
			t.Error("full_document should default to false for the HTML operation")
		}
		if wrap.Title != DefaultTitle {
			t.Errorf("title = %q, want %q", wrap.Title, DefaultTitle)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := ParseMarkdownHTMLOptions(map[string]any{"bogus": true})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
		if !strings.Contains(err.Error(), `"bogus"`) {
			t.Errorf("error %q does not name the unknown key", err)
		}
	})

	t.Run("wrong type rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := ParseMarkdownHTMLOptions(map[string]any{"gfm": "yes"})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
	})

	t.Run("sanitize policy parsed", func(t *testing.T) {
		t.Parallel()

		md, _, err := ParseMarkdownHTMLOptions(map[string]any{
			"sanitize": true,
			"sanitize_policy": map[string]any{
				"allowed_tags":    []any{"p", "em"},
				"allowed_schemes": []any{"https"},
				"allowed_attributes": map[string]any{
					"a": []any{"href"},
				},
			},
		})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if md.Policy == nil {
			t.Fatal("policy not parsed")
		}
		if len(md.Policy.AllowedTags) != 2 {
			t.Errorf("AllowedTags = %v", md.Policy.AllowedTags)
		}
		if got := md.Policy.AllowedAttributes["a"]; len(got) != 1 || got[0] != "href" {
			t.Errorf("AllowedAttributes[a] = %v", got)
		}
	})

	t.Run("unknown policy key rejected", func(t *testing.T) {
		t.Parallel()

		_, _, err := ParseMarkdownHTMLOptions(map[string]any{
			"sanitize_policy": map[string]any{"bogus": []any{}},
		})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
		if !strings.Contains(err.Error(), "sanitize_policy") {
			t.Errorf("error %q does not mention sanitize_policy", err)
		}
	})
}

func TestParseMarkdownPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("wrap defaults to on", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownPDFOptions(nil)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if !opts.Wrap.FullDocument {
			t.Error("full_document should default to true for the PDF pipeline")
		}
		if opts.PDF.Format != FormatA4 {
			t.Errorf("format = %q, want a4", opts.PDF.Format)
		}
		if opts.PDF.Scale != DefaultScale {
			t.Errorf("scale = %v, want %v", opts.PDF.Scale, DefaultScale)
		}
	})

	t.Run("full set of knobs", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownPDFOptions(map[string]any{
			"full_document":    false,
			"title":            "Report",
			"format":           "letter",
			"margin_top":       "0.5in",
			"landscape":        true,
			"print_background": false,
			"scale":            0.8,
			"footer_template":  "<span>p</span>",
		})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if opts.Wrap.FullDocument {
			t.Error("full_document not applied")
		}
		if opts.Wrap.Title != "Report" {
			t.Errorf("title = %q", opts.Wrap.Title)
		}
		if opts.PDF.Format != "letter" || opts.PDF.MarginTop != "0.5in" {
			t.Errorf("geometry not applied: %+v", opts.PDF)
		}
		if !opts.PDF.Landscape || opts.PDF.PrintBackground {
			t.Errorf("booleans not applied: %+v", opts.PDF)
		}
		if opts.PDF.Scale != 0.8 {
			t.Errorf("scale = %v", opts.PDF.Scale)
		}
	})

	t.Run("out-of-range scale rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseMarkdownPDFOptions(map[string]any{"scale": 2.5})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
	})

	t.Run("wrap_document is not a PDF pipeline key", func(t *testing.T) {
		t.Parallel()

		_, err := ParseMarkdownPDFOptions(map[string]any{"wrap_document": false})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
	})
}

func TestParseMarkdownDocxOptions(t *testing.T) {
	t.Parallel()

	t.Run("wrap defaults to on", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownDocxOptions(nil)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if !opts.Wrap.FullDocument {
			t.Error("wrap_document should default to true for the DOCX pipeline")
		}
		if opts.Docx.MarginTop != DefaultDocxMarginTwips {
			t.Errorf("margin_top = %d, want %d", opts.Docx.MarginTop, DefaultDocxMarginTwips)
		}
	})

	t.Run("title feeds wrap and metadata", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownDocxOptions(map[string]any{"title": "Handbook"})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if opts.Docx.Title != "Handbook" {
			t.Errorf("Docx.Title = %q", opts.Docx.Title)
		}
		if opts.Wrap.Title != "Handbook" {
			t.Errorf("Wrap.Title = %q", opts.Wrap.Title)
		}
	})

	t.Run("wrap_document off", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownDocxOptions(map[string]any{"wrap_document": false})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if opts.Wrap.FullDocument {
			t.Error("wrap_document not applied")
		}
	})

	t.Run("JSON numbers accepted for twips", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseMarkdownDocxOptions(map[string]any{"margin_top": float64(720)})
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if opts.Docx.MarginTop != 720 {
			t.Errorf("margin_top = %d, want 720", opts.Docx.MarginTop)
		}
	})

	t.Run("fractional twips rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseMarkdownDocxOptions(map[string]any{"margin_top": 1.5})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
	})

	t.Run("full_document is not a DOCX pipeline key", func(t *testing.T) {
		t.Parallel()

		_, err := ParseMarkdownDocxOptions(map[string]any{"full_document": true})
		if !errors.Is(err, ErrInvalidOptions) {
			t.Fatalf("error = %v, want ErrInvalidOptions", err)
		}
	})
}

func TestParseDocxOptions(t *testing.T) {
	t.Parallel()

	opts, err := ParseDocxOptions(map[string]any{
		"orientation": "landscape",
		"creator":     "QA",
	})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if opts.Orientation != OrientationLandscape {
		t.Errorf("orientation = %q", opts.Orientation)
	}
	if opts.Creator != "QA" {
		t.Errorf("creator = %q", opts.Creator)
	}

	if _, err := ParseDocxOptions(map[string]any{"orientation": "diagonal"}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("error = %v, want ErrInvalidOptions", err)
	}
}
