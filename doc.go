// Package docsmith converts documents between Markdown, HTML, PDF, and DOCX.
//
// # Quick Start
//
// Create a service and run a conversion:
//
//	svc := docsmith.New()
//
//	res, err := svc.ConvertMarkdownToPDF(ctx, "# Hello\n\nWorld", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", res.Data, 0644)
//
// Passing nil options always means defaults; every option is independently
// optional and falls back to a documented default.
//
// # Stages and Pipelines
//
// Each conversion is built from single-format stages:
//
//  1. Markdown to HTML via Goldmark (GFM, syntax highlighting, optional
//     bluemonday sanitization)
//  2. Full-document wrapping (charset, viewport, title, stylesheet)
//  3. HTML to PDF via headless Chrome (go-rod)
//  4. HTML to DOCX via the internal OOXML emitter
//
// Pipelines chain stages and merge their metadata. A stage failure aborts
// the pipeline and surfaces the failing stage in the error; no partial
// output is ever returned.
//
// # Browser Isolation
//
// Every PDF render launches its own Chrome instance and tears it down on
// all exit paths. Nothing is pooled or reused between calls, so one
// render's crash cannot affect another conversion.
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run. For containers and CI, set ROD_NO_SANDBOX=1
// or ROD_BROWSER_BIN to point at a pre-installed binary.
package docsmith
