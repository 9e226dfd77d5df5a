package posts

import "time"

// Post is the normalized record generated for one Markdown source file.
type Post struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images"`
	Content     string   `json:"content,omitempty"`

	// Source is the post file relative to the source directory.
	Source string `json:"-"`
	// DescriptionDerived reports whether Description came from the body.
	DescriptionDerived bool `json:"-"`
	// DateDefaulted reports whether Date is the generation timestamp.
	DateDefaulted bool `json:"-"`
	// ParseFailed reports a tolerated front-matter failure.
	ParseFailed bool `json:"-"`

	sortKey time.Time
}

// Result summarises a generator run.
type Result struct {
	RunID       string
	OutputPath  string
	Format      Format
	Posts       []Post
	Output      []byte
	Written     bool
	ParseErrors []error
	GeneratedAt time.Time
}

// Count returns the number of generated records.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Posts)
}
