package export

import (
	"sort"
	"sync"
)

// Encoder converts raw content plus options into format-specific bytes.
// Implementations must be pure: no shared state, no filesystem access.
type Encoder interface {
	// Encode renders the content into the encoder's output format.
	// Metadata and styling from the options are passed through untouched.
	Encode(content string, opts Options) ([]byte, error)

	// Preview returns an in-memory rendering of the content suitable for
	// display before committing to a write.
	Preview(content string) string
}

// Registry maps format identifiers to encoder capabilities. Formats may be
// declared without an encoder (e.g. binary formats served by external
// plugins); SupportedFormats reports the declared set while Lookup reports
// what is actually implemented.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
	declared map[string]bool
}

// NewRegistry creates a registry with the built-in encoders registered and
// the full declared format set, including formats without a built-in
// implementation.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		declared: make(map[string]bool),
	}

	r.Register(FormatText, textEncoder{})
	r.Register(FormatHTML, htmlEncoder{})
	r.Register(FormatMarkdown, markdownEncoder{})

	// Declared but not implemented in-process; encoding is left to
	// registered plugins.
	r.Declare(FormatPDF)
	r.Declare(FormatDOCX)

	return r
}

// Register binds an encoder to a format identifier, declaring the format if
// it was unknown. Registering an existing format replaces its encoder, so
// callers can swap in plugin implementations for declared binary formats.
func (r *Registry) Register(format string, enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[format] = enc
	r.declared[format] = true
}

// Declare marks a format identifier as supported without providing an
// encoder for it.
func (r *Registry) Declare(format string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.declared[format] = true
}

// Lookup returns the encoder for the given format, or false if no encoder
// is registered (even if the format is declared).
func (r *Registry) Lookup(format string) (Encoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enc, ok := r.encoders[format]
	return enc, ok
}

// SupportedFormats returns the declared format identifiers in sorted order,
// independent of whether each one currently has a working encoder.
func (r *Registry) SupportedFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.declared))
	for format := range r.declared {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}
