package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

// Delimiter is the marker line fencing a YAML front-matter block.
const Delimiter = "---"

// Only the YAML fence is recognised. The library defaults also accept TOML
// and a bare "{" JSON block, which would misfire on ordinary post bodies.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat(Delimiter, Delimiter, yaml.Unmarshal),
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. A document without a front-matter block yields an
// empty FrontMatter and the full source as body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, frontMatterFormats...)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document for the post at path. Front
// matter failures never fail the build: the error is kept on ParseErr, the
// metadata stays empty and Body falls back to the whole source.
func BuildDocument(path string, source []byte) *interfaces.Document {
	doc := &interfaces.Document{
		FilePath: path,
		Name:     BaseName(path),
		Source:   source,
	}

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		doc.ParseErr = err
		doc.FrontMatter = interfaces.FrontMatter{Custom: map[string]any{}, Raw: map[string]any{}}
		doc.Body = source
		return doc
	}

	doc.FrontMatter = fm
	doc.Body = body
	return doc
}

// Pointers distinguish "key absent" from "key present but empty" so an
// explicit `description: ""` is honoured verbatim.
type frontMatterEnvelope struct {
	Title       *string        `yaml:"title"`
	Slug        *string        `yaml:"slug"`
	Description *string        `yaml:"description"`
	Date        *string        `yaml:"date"`
	ReadTime    *string        `yaml:"readTime"`
	Category    *string        `yaml:"category"`
	Tags        tagList        `yaml:"tags"`
	Custom      map[string]any `yaml:",inline"`
}

// tagList accepts a single scalar (`tags: go`) or a sequence of scalars.
type tagList []string

func (t *tagList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			*t = nil
			return nil
		}
		*t = tagList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(tagList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("tags: line %d: expected a scalar entry", item.Line)
			}
			if item.Tag == "!!null" {
				continue
			}
			out = append(out, item.Value)
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("tags: line %d: expected a value or a list", node.Line)
	}
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+7)
	for key, value := range env.Custom {
		raw[key] = value
	}

	fm := interfaces.FrontMatter{
		Custom: cloneMap(env.Custom),
		Raw:    raw,
	}

	assign := func(key string, src *string, dst *string) {
		if src == nil {
			return
		}
		*dst = *src
		raw[key] = *src
	}
	assign("title", env.Title, &fm.Title)
	assign("slug", env.Slug, &fm.Slug)
	assign("description", env.Description, &fm.Description)
	assign("date", env.Date, &fm.Date)
	assign("readTime", env.ReadTime, &fm.ReadTime)
	assign("category", env.Category, &fm.Category)

	if len(env.Tags) > 0 {
		fm.Tags = append([]string(nil), env.Tags...)
		raw["tags"] = append([]string(nil), env.Tags...)
	}

	return fm
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
