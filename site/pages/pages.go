// Package pages loads the non-blog markdown pages (home, projects,
// speaking, donations). These are plain site copy without the blog
// pipeline's guarantees, so they render through blackfriday directly, the
// same way as any other static page body.
package pages

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/russross/blackfriday/v2"
)

// Page is one static page. Slug "" is the home page.
type Page struct {
	Slug  string
	Title string
	HTML  template.HTML
}

type pageMatter struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
}

// Load reads every *.md file at the pages root. The slug defaults to the
// file name without extension; "index" maps to the home page.
func Load(fsys fs.FS) ([]Page, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("pages: could not read pages root: %w", err)
	}

	var loaded []Page
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		page, err := loadOne(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, page)
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Slug < loaded[j].Slug })
	return loaded, nil
}

func loadOne(fsys fs.FS, name string) (Page, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Page{}, fmt.Errorf("pages: could not read %q: %w", name, err)
	}

	var matter pageMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
	if err != nil {
		return Page{}, fmt.Errorf("pages: %q: %w", name, err)
	}

	slug := matter.Slug
	if slug == "" {
		slug = strings.TrimSuffix(name, ".md")
	}
	if slug == "index" {
		slug = ""
	}

	rendered := blackfriday.Run(body,
		blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.AutoHeadingIDs))

	return Page{
		Slug:  slug,
		Title: matter.Title,
		HTML:  template.HTML(rendered),
	}, nil
}
