package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(filepath.Join(t.TempDir(), "exports"), NewRegistry(), nil)
}

func TestExportOne_TextRoundTrip(t *testing.T) {
	p := newTestPipeline(t)

	result := p.ExportOne(context.Background(), "Hello", Options{Format: FormatText, Filename: "hello.txt"})
	require.True(t, result.Success, "export failed: %s", result.Error)
	assert.Empty(t, result.Error)

	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), data)

	require.NotNil(t, result.FileSize)
	assert.Equal(t, int64(len("Hello")), *result.FileSize)
}

func TestExportOne_HTMLWrapping(t *testing.T) {
	p := newTestPipeline(t)

	result := p.ExportOne(context.Background(), "body text", Options{Format: FormatHTML, Filename: "page.html"})
	require.True(t, result.Success, "export failed: %s", result.Error)

	data, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t,
		"<!DOCTYPE html><html><head><title>Export</title></head><body><pre>body text</pre></body></html>",
		string(data))
}

func TestExportOne_SynthesizedFilename(t *testing.T) {
	p := newTestPipeline(t)
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	result := p.ExportOne(context.Background(), "content", Options{Format: FormatMarkdown})
	require.True(t, result.Success, "export failed: %s", result.Error)

	expected := fmt.Sprintf("export_%d.markdown", fixed.Unix())
	assert.Equal(t, expected, filepath.Base(result.FilePath))
}

func TestExportOne_OverwritesExistingFile(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()

	first := p.ExportOne(ctx, "old content", Options{Format: FormatText, Filename: "same.txt"})
	require.True(t, first.Success)

	second := p.ExportOne(ctx, "new", Options{Format: FormatText, Filename: "same.txt"})
	require.True(t, second.Success)

	data, err := os.ReadFile(second.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestExportOne_UnsupportedFormat(t *testing.T) {
	p := newTestPipeline(t)

	result := p.ExportOne(context.Background(), "content", Options{Format: "rtf"})
	assert.False(t, result.Success)
	assert.Equal(t, "Unsupported format: rtf", result.Error)
	assert.Empty(t, result.FilePath)
	assert.Nil(t, result.FileSize)
}

func TestExportOne_DeclaredWithoutEncoder(t *testing.T) {
	p := newTestPipeline(t)

	// pdf is a declared format but ships no built-in encoder.
	result := p.ExportOne(context.Background(), "content", Options{Format: FormatPDF})
	assert.False(t, result.Success)
	assert.Equal(t, "Unsupported format: pdf", result.Error)
}

func TestExportOne_IOFailureIsCaptured(t *testing.T) {
	// Point the root at an existing file so directory creation fails.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	p := NewPipeline(blocked, NewRegistry(), nil)
	result := p.ExportOne(context.Background(), "content", Options{Format: FormatText})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestExportBatch_PerItemIsolation(t *testing.T) {
	p := newTestPipeline(t)

	// The middle item targets a format nobody implements; its failure must
	// not affect the neighbouring slots.
	items := []BatchItem{
		{Content: "first article", Title: "first"},
		{Content: "second article", Title: "second", Format: "rtf"},
		{Content: "third article", Title: "third"},
	}
	results := p.ExportBatch(context.Background(), items, Options{Format: FormatText})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "Unsupported format: rtf", results[1].Error)
	assert.True(t, results[2].Success)

	for _, index := range []int{0, 2} {
		data, err := os.ReadFile(results[index].FilePath)
		require.NoError(t, err)
		assert.Equal(t, items[index].Content, string(data))
	}
}

func TestExportBatch_FilenamesFromTitleAndIndex(t *testing.T) {
	p := newTestPipeline(t)

	items := []BatchItem{
		{Content: "one", Title: "alpha"},
		{Content: "two", Title: "beta"},
	}
	results := p.ExportBatch(context.Background(), items, Options{Format: FormatText})

	require.Len(t, results, 2)
	require.True(t, results[0].Success)
	require.True(t, results[1].Success)
	assert.Equal(t, "alpha_0.txt", filepath.Base(results[0].FilePath))
	assert.Equal(t, "beta_1.txt", filepath.Base(results[1].FilePath))
}

func TestExportBatch_UntitledItemUsesSharedOptions(t *testing.T) {
	p := newTestPipeline(t)

	results := p.ExportBatch(context.Background(),
		[]BatchItem{{Content: "body"}},
		Options{Format: FormatText, Filename: "fixed.txt"})

	require.Len(t, results, 1)
	require.True(t, results[0].Success)
	assert.Equal(t, "fixed.txt", filepath.Base(results[0].FilePath))
}

func TestExportBatch_Empty(t *testing.T) {
	p := newTestPipeline(t)
	results := p.ExportBatch(context.Background(), nil, Options{Format: FormatText})
	assert.Empty(t, results)
}

func TestPreview(t *testing.T) {
	p := newTestPipeline(t)

	tests := []struct {
		name     string
		format   string
		content  string
		expected string
	}{
		{
			name:     "text passthrough",
			format:   FormatText,
			content:  "plain",
			expected: "plain",
		},
		{
			name:     "markdown passthrough",
			format:   FormatMarkdown,
			content:  "# Title",
			expected: "# Title",
		},
		{
			name:     "html wrapper",
			format:   FormatHTML,
			content:  "hello",
			expected: "<!DOCTYPE html><html><head><title>Preview</title></head><body><pre>hello</pre></body></html>",
		},
		{
			name:     "unknown format placeholder",
			format:   "pdf",
			content:  "hello",
			expected: "Preview for pdf format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Preview(tt.content, Options{Format: tt.format})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidatePath(t *testing.T) {
	p := newTestPipeline(t)

	assert.False(t, p.ValidatePath("/nonexistent_root/x/y"))
	assert.False(t, p.ValidatePath(""))

	root, err := p.DefaultExportPath()
	require.NoError(t, err)
	assert.True(t, p.ValidatePath(filepath.Join(root, "f.txt")))
}

func TestDefaultExportPath_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "exports")
	p := NewPipeline(root, NewRegistry(), nil)

	got, err := p.DefaultExportPath()
	require.NoError(t, err)
	assert.Equal(t, root, got)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportOne_ConcurrentFirstExports(t *testing.T) {
	// Concurrent first-time exports race to create the root; none may fail.
	p := NewPipeline(filepath.Join(t.TempDir(), "fresh"), NewRegistry(), nil)

	const workers = 16
	results := make([]Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.ExportOne(context.Background(), "content",
				Options{Format: FormatText, Filename: fmt.Sprintf("f%d.txt", i)})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		assert.True(t, result.Success, "worker %d failed: %s", i, result.Error)
	}
}
