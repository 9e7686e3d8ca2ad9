package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/contentforge/contentforge-api/internal/platform/logger"
)

// Pipeline writes encoded content under a configured export root.
// All failures are captured in the returned Result; the pipeline never
// returns an error across its own boundary.
type Pipeline struct {
	root     string
	registry *Registry
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline creates a Pipeline writing under root, dispatching through
// the given registry. If log is nil, a default logger will be used.
func NewPipeline(root string, registry *Registry, log *slog.Logger) *Pipeline {
	if registry == nil {
		panic("registry cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Pipeline{
		root:     root,
		registry: registry,
		logger:   log.With(slog.String("component", "export_pipeline")),
		now:      time.Now,
	}
}

// Registry exposes the pipeline's encoder registry so callers can register
// additional encoders or list the supported formats.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// ExportOne encodes the content per the options and writes it under the
// export root, overwriting any existing file at the resolved path.
func (p *Pipeline) ExportOne(ctx context.Context, content string, opts Options) Result {
	log := logger.FromContextOrDefault(ctx, p.logger)

	filename := opts.Filename
	if filename == "" {
		filename = fmt.Sprintf("export_%d.%s", p.now().Unix(), opts.Format)
	}

	// MkdirAll is idempotent; concurrent first-time exports racing to
	// create the root all succeed.
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		log.Error("failed to create export root",
			slog.String("root", p.root),
			slog.String("error", err.Error()))
		return failure(err.Error())
	}

	encoder, ok := p.registry.Lookup(opts.Format)
	if !ok {
		log.Warn("export requested for unsupported format",
			slog.String("format", opts.Format))
		return failure(fmt.Sprintf("Unsupported format: %s", opts.Format))
	}

	encoded, err := encoder.Encode(content, opts)
	if err != nil {
		log.Error("encoder failed",
			slog.String("format", opts.Format),
			slog.String("error", err.Error()))
		return failure(err.Error())
	}

	path := filepath.Join(p.root, filename)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		log.Error("failed to write export file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return failure(err.Error())
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Error("failed to stat export file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return failure(err.Error())
	}

	log.Info("export written",
		slog.String("path", path),
		slog.String("format", opts.Format),
		slog.Int64("size", info.Size()))
	return successResult(path, info.Size())
}

// ExportBatch exports each item in input order, deriving a per-item
// filename from the item title and index when a title is present.
// The returned slice has exactly one Result per input item, in input
// order; one item's failure never affects another's slot.
func (p *Pipeline) ExportBatch(ctx context.Context, items []BatchItem, opts Options) []Result {
	results := make([]Result, 0, len(items))

	for index, item := range items {
		itemOpts := opts
		if item.Format != "" {
			itemOpts.Format = item.Format
		}
		if item.Title != "" {
			itemOpts.Filename = fmt.Sprintf("%s_%d.%s", item.Title, index, itemOpts.Format)
		}
		results = append(results, p.ExportOne(ctx, item.Content, itemOpts))
	}

	return results
}

// Preview returns a format-appropriate in-memory rendering of the content
// with no filesystem interaction. Unknown formats yield a generic
// placeholder rather than failing.
func (p *Pipeline) Preview(content string, opts Options) string {
	encoder, ok := p.registry.Lookup(opts.Format)
	if !ok {
		return fmt.Sprintf("Preview for %s format", opts.Format)
	}
	return encoder.Preview(content)
}

// ValidatePath reports whether the path's parent directory currently exists.
func (p *Pipeline) ValidatePath(path string) bool {
	if path == "" {
		return false
	}

	parent := filepath.Dir(path)
	info, err := os.Stat(parent)
	return err == nil && info.IsDir()
}

// DefaultExportPath ensures the export root exists and returns it.
func (p *Pipeline) DefaultExportPath() (string, error) {
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export root: %w", err)
	}
	return p.root, nil
}
