package docsmith

import "time"

// Service exposes the conversion stages and pipelines. A Service is safe
// for concurrent use: it holds no per-request state, and every PDF render
// launches its own isolated browser.
type Service struct {
	renderer pdfRenderer
	emitter  docxEmitter
	timeout  time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLoadTimeout overrides the content-load timeout for PDF rendering.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithLoadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docsmith: WithLoadTimeout duration must be positive")
	}
	return func(s *Service) {
		s.timeout = d
	}
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{timeout: loadTimeout}

	for _, opt := range opts {
		opt(s)
	}

	// Create backends if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = &rodRenderer{timeout: s.timeout}
	}
	if s.emitter == nil {
		s.emitter = docxmlEmitter{}
	}

	return s
}
