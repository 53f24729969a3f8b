package docsmith

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestConvertHTMLToDocx(t *testing.T) {
	t.Parallel()

	emitter := &fakeEmitter{data: []byte("PK")}
	svc := newFakeService(&fakeRenderer{}, emitter)

	opts := DefaultDocxOptions()
	opts.MarginTop = 720

	res, err := svc.ConvertHTMLToDocx(context.Background(), "<p>hi</p>", opts)
	if err != nil {
		t.Fatalf("ConvertHTMLToDocx() error = %v", err)
	}
	if emitter.lastHTML != "<p>hi</p>" {
		t.Errorf("emitter got %q; no metadata set, content must pass through unchanged", emitter.lastHTML)
	}
	if emitter.lastGeom.MarginTop != 720 {
		t.Errorf("MarginTop = %d, want 720", emitter.lastGeom.MarginTop)
	}
	if emitter.lastGeom.Landscape {
		t.Error("portrait orientation should not set Landscape")
	}
	if res.Size != len(emitter.data) {
		t.Errorf("Size = %d", res.Size)
	}
}

func TestConvertHTMLToDocx_Errors(t *testing.T) {
	t.Parallel()

	svc := newFakeService(&fakeRenderer{}, &fakeEmitter{})

	if _, err := svc.ConvertHTMLToDocx(context.Background(), "", nil); !errors.Is(err, ErrEmptyHTML) {
		t.Errorf("empty input error = %v, want ErrEmptyHTML", err)
	}

	bad := &DocxOptions{Orientation: "diagonal"}
	if _, err := svc.ConvertHTMLToDocx(context.Background(), "<p>x</p>", bad); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("bad options error = %v, want ErrInvalidOptions", err)
	}

	emitErr := errors.New("zip failure")
	failing := newFakeService(&fakeRenderer{}, &fakeEmitter{err: emitErr})
	if _, err := failing.ConvertHTMLToDocx(context.Background(), "<p>x</p>", nil); !errors.Is(err, ErrDocxConversion) {
		t.Errorf("emit failure error = %v, want ErrDocxConversion", err)
	}
}

func TestInjectHeadMetadata(t *testing.T) {
	t.Parallel()

	opts := &DocxOptions{Title: "T", Creator: "C"}

	t.Run("bare fragment gets a shell", func(t *testing.T) {
		t.Parallel()

		got := injectHeadMetadata("<p>hi</p>", opts)
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>T</title>",
			`<meta name="author" content="C">`,
			"<body>\n<p>hi</p>",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q\ngot: %s", want, got)
			}
		}
	})

	t.Run("existing head gets metadata right after it", func(t *testing.T) {
		t.Parallel()

		input := "<html><head><title>Old</title></head><body><p>x</p></body></html>"
		got := injectHeadMetadata(input, opts)
		if !strings.Contains(got, "<head>\n<title>T</title>") {
			t.Errorf("metadata not inserted after <head>\ngot: %s", got)
		}
		if !strings.Contains(got, "<title>Old</title>") {
			t.Error("existing head content must be preserved")
		}
	})

	t.Run("html without a lowercase head is left alone", func(t *testing.T) {
		t.Parallel()

		input := "<html><HEAD></HEAD><body><p>x</p></body></html>"
		if got := injectHeadMetadata(input, opts); got != input {
			t.Errorf("oddly-cased markup should pass through unchanged\ngot: %s", got)
		}
	})

	t.Run("metadata values are escaped", func(t *testing.T) {
		t.Parallel()

		got := injectHeadMetadata("<p>x</p>", &DocxOptions{Title: `<T> & "Q"`})
		if !strings.Contains(got, "&lt;T&gt;") {
			t.Errorf("title not escaped\ngot: %s", got)
		}
		if strings.Contains(got, "<title><T>") {
			t.Error("raw title markup leaked into the head")
		}
	})
}
