package posts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects the generated module flavour.
type Format string

const (
	// FormatTypeScript renders a TypeScript module exporting the Post
	// interface and a typed posts array.
	FormatTypeScript Format = "ts"
	// FormatJSON renders the bare posts array.
	FormatJSON Format = "json"
)

// ParseFormat maps a config value onto a Format. Empty selects TypeScript.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ts", "typescript":
		return FormatTypeScript, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("posts: unsupported output format %q", value)
	}
}

const generatedHeader = "// Code generated by blogdata. DO NOT EDIT.\n\n"

const postInterface = `export interface Post {
  title: string
  slug: string
  description: string
  date: string
  readTime: string
  category: string
  tags?: string[]
  images: string[]
  content?: string
}
`

// Render serialises posts in the requested format. Output depends only on
// its input, so identical runs produce identical bytes.
func Render(posts []Post, format Format) ([]byte, error) {
	data, err := marshalPosts(posts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return data, nil
	case FormatTypeScript, "":
		var buf bytes.Buffer
		buf.Grow(len(generatedHeader) + len(postInterface) + len(data) + 40)
		buf.WriteString(generatedHeader)
		buf.WriteString(postInterface)
		buf.WriteString("\nexport const posts: Post[] = ")
		buf.Write(data)
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("posts: unsupported output format %q", format)
	}
}

// marshalPosts writes a two-space indented JSON array with a trailing
// newline. HTML escaping is off so content and CJK text stay readable.
func marshalPosts(posts []Post) ([]byte, error) {
	if posts == nil {
		posts = []Post{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return nil, fmt.Errorf("posts: encode: %w", err)
	}
	return buf.Bytes(), nil
}
