package export

import "fmt"

// Built-in format identifiers.
const (
	FormatText     = "txt"
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
	FormatDOCX     = "docx"
)

// textEncoder writes the content verbatim.
type textEncoder struct{}

func (textEncoder) Encode(content string, _ Options) ([]byte, error) {
	return []byte(content), nil
}

func (textEncoder) Preview(content string) string {
	return content
}

// htmlEncoder wraps the content in a minimal HTML document, preserving the
// raw text inside a pre block.
type htmlEncoder struct{}

func (htmlEncoder) Encode(content string, _ Options) ([]byte, error) {
	return []byte(wrapHTML("Export", content)), nil
}

func (htmlEncoder) Preview(content string) string {
	return wrapHTML("Preview", content)
}

func wrapHTML(title, content string) string {
	return fmt.Sprintf(
		"<!DOCTYPE html><html><head><title>%s</title></head><body><pre>%s</pre></body></html>",
		title,
		content,
	)
}

// markdownEncoder writes the content verbatim; article bodies are already
// markdown.
type markdownEncoder struct{}

func (markdownEncoder) Encode(content string, _ Options) ([]byte, error) {
	return []byte(content), nil
}

func (markdownEncoder) Preview(content string) string {
	return content
}
