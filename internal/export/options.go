package export

// Options configures one export attempt.
type Options struct {
	// Format is the key into the encoder registry (e.g. "txt", "html").
	Format string `json:"format"            validate:"required"`

	// Filename is used verbatim when present; otherwise a name is
	// synthesized from the current unix timestamp and the format.
	Filename string `json:"filename,omitempty"`

	// Metadata and Styling are opaque key-value maps passed through to the
	// encoder untouched; the pipeline never interprets them.
	Metadata map[string]any `json:"metadata,omitempty"`
	Styling  map[string]any `json:"styling,omitempty"`
}

// Result is the outcome of one export attempt. FilePath and FileSize are
// set only on success; Error only on failure.
type Result struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath,omitempty"`
	Error    string `json:"error,omitempty"`
	FileSize *int64 `json:"fileSize,omitempty"`
}

// BatchItem is one entry of a batch export: the content to encode plus an
// optional title used to derive a per-item filename and an optional format
// overriding the shared options for this item only.
type BatchItem struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
	Format  string `json:"format,omitempty"`
}

// failure builds a failed Result with the given message.
func failure(message string) Result {
	return Result{Success: false, Error: message}
}

// success builds a successful Result for the written file.
func successResult(path string, size int64) Result {
	return Result{Success: true, FilePath: path, FileSize: &size}
}
