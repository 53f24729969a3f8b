package docsmith

import (
	"strings"
	"testing"
)

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		fragment     string
		opts         *WrapOptions
		wantContains []string
		wantNot      []string
	}{
		{
			name:     "nil options",
			fragment: "<p>hello</p>",
			wantContains: []string{
				"<!DOCTYPE html>",
				`<meta charset="utf-8">`,
				"<title>Document</title>",
				"<style>",
				"<p>hello</p>",
				"</body>",
			},
		},
		{
			name:         "custom title",
			fragment:     "<p>x</p>",
			opts:         &WrapOptions{Title: "Report"},
			wantContains: []string{"<title>Report</title>"},
			wantNot:      []string{"<title>Document</title>"},
		},
		{
			name:         "title is escaped",
			fragment:     "<p>x</p>",
			opts:         &WrapOptions{Title: `<Doc> & "more"`},
			wantContains: []string{"&lt;Doc&gt;"},
			wantNot:      []string{"<title><Doc>"},
		},
		{
			name:         "caller CSS included",
			fragment:     "<p>x</p>",
			opts:         &WrapOptions{CSS: "body { color: red; }"},
			wantContains: []string{"body { color: red; }"},
		},
		{
			name:         "style-closing CSS escaped",
			fragment:     "<p>x</p>",
			opts:         &WrapOptions{CSS: "a{}</style><script>alert(1)</script>"},
			wantContains: []string{`<\/style>`},
			wantNot:      []string{"</style><script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapDocument(tt.fragment, tt.opts)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q", not)
				}
			}
		})
	}
}

func TestWrapDocument_CSSOrder(t *testing.T) {
	t.Parallel()

	got := WrapDocument("<p>x</p>", &WrapOptions{CSS: "h1 { color: teal; }"})

	builtin := strings.Index(got, "font-family")
	custom := strings.Index(got, "color: teal")
	if builtin == -1 || custom == -1 {
		t.Fatalf("expected both stylesheets in output")
	}
	if custom < builtin {
		t.Error("caller CSS must come after the built-in stylesheet so it wins by cascade")
	}
}

func TestWrapDocument_Deterministic(t *testing.T) {
	t.Parallel()

	opts := &WrapOptions{Title: "Same", CSS: "p{}"}
	if WrapDocument("<p>x</p>", opts) != WrapDocument("<p>x</p>", opts) {
		t.Error("equal input must produce identical output")
	}
}
