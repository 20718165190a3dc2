package domain

import "fmt"

// Content is one unit of tool output, either plain text or binary data with
// an explicit MIME type.
type Content interface {
	contentBlock()
}

// TextContent is a plain text block.
type TextContent struct {
	Text string `json:"text"`
}

// BinaryContent is a binary block, e.g. an image. Data holds the raw bytes;
// transports are responsible for any encoding they need (base64 on MCP).
type BinaryContent struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

func (TextContent) contentBlock()   {}
func (BinaryContent) contentBlock() {}

// Result is the successful outcome of a tool invocation: an ordered sequence
// of content blocks.
type Result struct {
	Content []Content `json:"content"`
}

// Text builds a result holding a single text block.
func Text(s string) Result {
	return Result{Content: []Content{TextContent{Text: s}}}
}

// Textf builds a single text block result from a format string.
func Textf(format string, args ...any) Result {
	return Text(fmt.Sprintf(format, args...))
}

// Binary builds a result holding a single binary block.
func Binary(data []byte, mimeType string) Result {
	return Result{Content: []Content{BinaryContent{Data: data, MIMEType: mimeType}}}
}
