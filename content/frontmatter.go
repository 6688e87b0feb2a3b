package content

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// ErrMalformedFrontmatter reports a post file whose frontmatter block is
// unterminated or missing a required key. It is always local to one item.
var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

// Frontmatter is the delimited metadata block at the head of a post file.
// Title and Date are required. Unknown keys land in Extra and are preserved
// opaquely but never interpreted.
type Frontmatter struct {
	Title string         `yaml:"title"`
	Date  string         `yaml:"date"`
	Tags  []string       `yaml:"tags"`
	Extra map[string]any `yaml:",inline"`
}

// PublishedDate parses the required ISO-8601 date string.
func (fm *Frontmatter) PublishedDate() (time.Time, error) {
	d, err := time.Parse("2006-01-02", fm.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMalformedFrontmatter, fm.Date)
	}
	return d, nil
}

// ParseFrontmatter splits the metadata block from the markdown body. It is
// a pure transformation of its input.
func ParseFrontmatter(raw []byte) (*Frontmatter, string, error) {
	var fm Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	if fm.Title == "" {
		return nil, "", fmt.Errorf("%w: missing required key %q", ErrMalformedFrontmatter, "title")
	}
	if fm.Date == "" {
		return nil, "", fmt.Errorf("%w: missing required key %q", ErrMalformedFrontmatter, "date")
	}
	if _, err := fm.PublishedDate(); err != nil {
		return nil, "", err
	}
	return &fm, string(body), nil
}
