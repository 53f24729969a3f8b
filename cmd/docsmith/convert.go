package main

import (
	"context"
	"fmt"
	"os"

	docsmith "github.com/alnah/go-docsmith"
	"github.com/alnah/go-docsmith/internal/fileutil"
)

// runConvert handles `docsmith convert <type> <input> <output>`.
func runConvert(args []string) error {
	f, rest, err := parseConvertFlags(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(rest) != 3 {
		printConvertUsage(os.Stderr)
		return fmt.Errorf("%w: convert needs <type> <input> <output>", ErrUsage)
	}
	convType, input, output := rest[0], rest[1], rest[2]

	if _, err := loadConfig(f.config); err != nil {
		return err
	}

	if !fileutil.FileExists(input) {
		return fmt.Errorf("%w: %s is not a readable file", ErrReadInput, input)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	content := string(data)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if f.verbose {
		fmt.Fprintf(os.Stderr, "Converting %s (%s, %d bytes)\n", input, convType, len(content))
	}

	out, err := convertContent(ctx, convType, content, f)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if f.verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", output, len(out))
	}
	return nil
}

func convertContent(ctx context.Context, convType, content string, f *convertFlags) ([]byte, error) {
	svc := docsmith.New()

	switch convType {
	case "md-to-html":
		res, err := svc.ConvertMarkdown(ctx, content, nil)
		if err != nil {
			return nil, err
		}
		out := res.HTML
		if f.fullDoc {
			wrap := &docsmith.WrapOptions{FullDocument: true, Title: docsmith.DefaultTitle, CSS: f.css}
			if f.title != "" {
				wrap.Title = f.title
			}
			out = docsmith.WrapDocument(out, wrap)
		}
		return []byte(out), nil

	case "md-to-pdf":
		opts := docsmith.DefaultMarkdownPDFOptions()
		opts.Wrap.CSS = f.css
		if f.title != "" {
			opts.Wrap.Title = f.title
		}
		res, err := svc.ConvertMarkdownToPDF(ctx, content, opts)
		if err != nil {
			return nil, err
		}
		return res.Data, nil

	case "html-to-pdf":
		res, err := svc.ConvertHTMLToPDF(ctx, content, nil)
		if err != nil {
			return nil, err
		}
		return res.Data, nil

	case "md-to-docx":
		opts := docsmith.DefaultMarkdownDocxOptions()
		opts.Wrap.CSS = f.css
		if f.title != "" {
			opts.Wrap.Title = f.title
			opts.Docx.Title = f.title
		}
		res, err := svc.ConvertMarkdownToDocx(ctx, content, opts)
		if err != nil {
			return nil, err
		}
		return res.Data, nil

	case "html-to-docx":
		opts := docsmith.DefaultDocxOptions()
		if f.title != "" {
			opts.Title = f.title
		}
		res, err := svc.ConvertHTMLToDocx(ctx, content, opts)
		if err != nil {
			return nil, err
		}
		return res.Data, nil

	default:
		return nil, fmt.Errorf("%w: unknown conversion type %q", ErrUsage, convType)
	}
}
