package posts

import (
	"io/fs"
	"strings"
)

// DefaultImageURLPrefix is the public path images are served under.
const DefaultImageURLPrefix = "/images/"

// listImages returns the regular file names of the images directory in
// lexical order.
func listImages(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// matchImages selects the images whose filename starts with baseName and maps
// them to public asset paths. The result is never nil so it renders as [].
func matchImages(names []string, baseName, urlPrefix string) []string {
	matched := []string{}
	if baseName == "" {
		return matched
	}
	for _, name := range names {
		if strings.HasPrefix(name, baseName) {
			matched = append(matched, imageURL(urlPrefix, name))
		}
	}
	return matched
}

func imageURL(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.TrimRight(prefix, "/") + "/" + name
}
