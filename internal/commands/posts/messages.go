package postscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const generatePostsMessageType = "blogdata.posts.generate"

// GeneratePostsCommand regenerates the posts module from SourceDir into
// OutputPath. Zero-valued optional fields keep the handler's base settings.
type GeneratePostsCommand struct {
	// SourceDir is the directory holding the Markdown posts.
	SourceDir string `json:"source_dir"`
	// OutputPath is the generated module. Optional for dry runs.
	OutputPath string `json:"output_path,omitempty"`
	// ImagesDir overrides the images directory.
	ImagesDir string `json:"images_dir,omitempty"`
	// Format selects ts or json output.
	Format         string `json:"format,omitempty"`
	IncludeContent bool   `json:"include_content,omitempty"`
	SkipImages     bool   `json:"skip_images,omitempty"`
	// DryRun renders without writing OutputPath.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (GeneratePostsCommand) Type() string { return generatePostsMessageType }

// Validate ensures the command names a source, a destination and a known format.
func (cmd GeneratePostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SourceDir, validation.Required, validation.By(notBlank("blogdata.posts.generate.source_required", "source directory is required"))),
		validation.Field(&cmd.OutputPath,
			validation.When(!cmd.DryRun, validation.Required, validation.By(notBlank("blogdata.posts.generate.output_required", "output path is required"))),
		),
		validation.Field(&cmd.Format, validation.In("ts", "typescript", "json").Error("format must be ts or json")),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
