package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	docsmith "github.com/alnah/go-docsmith"
)

const DefaultPort = 3000

const (
	contentTypePDF  = "application/pdf"
	contentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypeHTML = "text/html; charset=utf-8"
)

// ResolvePort picks the listen port: an explicit flag value wins, then the
// DOCSMITH_PORT environment variable, then the default.
func ResolvePort(flagPort int) int {
	if flagPort > 0 {
		return flagPort
	}
	if env := os.Getenv("DOCSMITH_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil && p > 0 {
			return p
		}
	}
	return DefaultPort
}

// Handler returns the complete HTTP handler: health check, the MCP SSE
// transport, and the REST conversion endpoints.
func Handler(logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	sse := mcpserver.NewSSEServer(NewMCPServer(),
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
	)
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())

	mux.HandleFunc("GET /health", handleHealth)

	h := &restHandler{svc: docsmith.New(), logger: logger}
	mux.HandleFunc("POST /convert/html-to-pdf", h.htmlToPDF)
	mux.HandleFunc("POST /convert/markdown-to-html", h.markdownToHTML)
	mux.HandleFunc("POST /convert/markdown-to-pdf", h.markdownToPDF)
	mux.HandleFunc("POST /convert/url-to-pdf", h.urlToPDF)
	mux.HandleFunc("POST /convert/html-to-docx", h.htmlToDocx)
	mux.HandleFunc("POST /convert/markdown-to-docx", h.markdownToDocx)

	return mux
}

// ListenAndServe runs the HTTP front-end until ctx is cancelled, then shuts
// down gracefully, letting in-flight conversions finish.
func ListenAndServe(ctx context.Context, port int, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           Handler(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"name":    Name,
		"version": Version,
	})
}

type restHandler struct {
	svc    *docsmith.Service
	logger *logrus.Logger
}

type htmlRequest struct {
	HTML    string         `json:"html"`
	Options map[string]any `json:"options"`
}

type urlRequest struct {
	URL     string         `json:"url"`
	Options map[string]any `json:"options"`
}

type sectionRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

type markdownRequest struct {
	Markdown string           `json:"markdown"`
	Sections []sectionRequest `json:"sections"`
	Options  map[string]any   `json:"options"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeConversionError maps caller mistakes to 400 and everything else,
// renderer failures included, to 500.
func (h *restHandler) writeConversionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if docsmith.IsValidationError(err) || docsmith.IsInputError(err) {
		status = http.StatusBadRequest
	} else {
		h.logger.WithError(err).Error("conversion failed")
	}
	writeError(w, status, err.Error())
}

func writeAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (h *restHandler) htmlToPDF(w http.ResponseWriter, r *http.Request) {
	var req htmlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	opts, err := docsmith.ParsePDFOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	res, err := h.svc.ConvertHTMLToPDF(r.Context(), req.HTML, opts)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	writeAttachment(w, res.Data, contentTypePDF, "document.pdf")
}

func (h *restHandler) urlToPDF(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	opts, err := docsmith.ParsePDFOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	res, err := h.svc.ConvertURLToPDF(r.Context(), req.URL, opts)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	writeAttachment(w, res.Data, contentTypePDF, "document.pdf")
}

func (h *restHandler) markdownToHTML(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	md, wrap, err := docsmith.ParseMarkdownHTMLOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	res, err := h.svc.ConvertMarkdown(r.Context(), req.Markdown, md)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	content := res.HTML
	if wrap.FullDocument {
		content = docsmith.WrapDocument(content, wrap)
	}
	writeAttachment(w, []byte(content), contentTypeHTML, "document.html")
}

func (h *restHandler) markdownToPDF(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	opts, err := docsmith.ParseMarkdownPDFOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	var res *docsmith.PipelineResult
	if len(req.Sections) > 0 {
		sections := make([]docsmith.Section, len(req.Sections))
		for i, s := range req.Sections {
			sections[i] = docsmith.Section{Content: s.Content, Title: s.Title}
		}
		res, err = h.svc.ConvertMarkdownSectionsToPDF(r.Context(), sections, opts)
	} else {
		res, err = h.svc.ConvertMarkdownToPDF(r.Context(), req.Markdown, opts)
	}
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	writeAttachment(w, res.Data, contentTypePDF, "document.pdf")
}

func (h *restHandler) htmlToDocx(w http.ResponseWriter, r *http.Request) {
	var req htmlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	opts, err := docsmith.ParseDocxOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	res, err := h.svc.ConvertHTMLToDocx(r.Context(), req.HTML, opts)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	writeAttachment(w, res.Data, contentTypeDocx, "document.docx")
}

func (h *restHandler) markdownToDocx(w http.ResponseWriter, r *http.Request) {
	var req markdownRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	opts, err := docsmith.ParseMarkdownDocxOptions(req.Options)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	res, err := h.svc.ConvertMarkdownToDocx(r.Context(), req.Markdown, opts)
	if err != nil {
		h.writeConversionError(w, err)
		return
	}
	writeAttachment(w, res.Data, contentTypeDocx, "document.docx")
}
