package mcp

import (
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aretw0/gatehouse/pkg/domain"
	"github.com/aretw0/gatehouse/pkg/schema"
)

// toTool maps a descriptor to its protocol-level tool declaration.
func toTool(d domain.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(d.Description),
		mcp.WithReadOnlyHintAnnotation(d.ReadOnly),
		mcp.WithOpenWorldHintAnnotation(d.OpenWorld),
	}
	for _, key := range d.Params.Keys() {
		opts = append(opts, fieldOption(key, d.Params[key]))
	}
	return mcp.NewTool(d.Name, opts...)
}

// fieldOption maps one schema field to a tool property declaration.
func fieldOption(name string, f schema.Field) mcp.ToolOption {
	var props []mcp.PropertyOption
	if f.Description != "" {
		props = append(props, mcp.Description(f.Description))
	}
	if f.Required {
		props = append(props, mcp.Required())
	}

	switch t := f.Type.(type) {
	case *schema.NumberType:
		if t.Min != nil {
			props = append(props, mcp.Min(*t.Min))
		}
		if t.Max != nil {
			props = append(props, mcp.Max(*t.Max))
		}
		if def, ok := numberDefault(f.Default); ok {
			props = append(props, mcp.DefaultNumber(def))
		}
		return mcp.WithNumber(name, props...)
	case *schema.EnumType:
		props = append(props, mcp.Enum(t.Values...))
		if def, ok := f.Default.(string); ok {
			props = append(props, mcp.DefaultString(def))
		}
		return mcp.WithString(name, props...)
	case *schema.BoolType:
		if def, ok := f.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(def))
		}
		return mcp.WithBoolean(name, props...)
	default:
		if def, ok := f.Default.(string); ok {
			props = append(props, mcp.DefaultString(def))
		}
		return mcp.WithString(name, props...)
	}
}

func numberDefault(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toCallResult maps a tool result to protocol content blocks. Binary blocks
// travel base64-encoded as image content.
func toCallResult(res domain.Result) *mcp.CallToolResult {
	contents := make([]mcp.Content, 0, len(res.Content))
	for _, block := range res.Content {
		switch v := block.(type) {
		case domain.TextContent:
			contents = append(contents, mcp.TextContent{Type: "text", Text: v.Text})
		case domain.BinaryContent:
			contents = append(contents, mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(v.Data),
				MIMEType: v.MIMEType,
			})
		}
	}
	return &mcp.CallToolResult{Content: contents}
}

// toErrorResult maps a fault to a protocol-level error result carrying only
// the fault's caller-safe message.
func toErrorResult(err error) *mcp.CallToolResult {
	f, ok := domain.AsFault(err)
	if !ok {
		f = domain.Internal(err)
	}
	return mcp.NewToolResultError(f.Message)
}
