// Package app holds site-wide constants and the configuration struct that
// every other component receives at construction time. Nothing in this
// repository reads configuration from ambient globals.
package app

import (
	"fmt"

	"github.com/tmheller/tmheller.dev/kit/jsonutil"
)

const (
	Domain          = "tmheller.dev"
	Origin          = "https://" + Domain
	SiteTitle       = "Tim Heller"
	SiteDescription = "Software engineering notes on functional programming, .NET, and the web."
)

// Config is the explicit configuration for the content pipeline and the
// site builder. Construct one with DefaultConfig and adjust, or decode one
// from site.config.json via LoadConfig.
type Config struct {
	// ContentDir is the directory holding one folder per blog post, each
	// containing an index.md file.
	ContentDir string `json:"contentDir"`

	// PagesDir holds the non-blog markdown pages (home, projects, speaking,
	// donations).
	PagesDir string `json:"pagesDir"`

	// StaticDir holds CSS/JS/image assets copied (and minified) into the
	// output as-is.
	StaticDir string `json:"staticDir"`

	// BlogPathPrefix is joined with a post id to form its URL path.
	BlogPathPrefix string `json:"blogPathPrefix"`

	// WordsPerMinute is the fixed constant for reading-time estimates.
	// It is not adjustable per post.
	WordsPerMinute int `json:"wordsPerMinute"`

	// IgnorePatterns are doublestar globs matched against folder names
	// inside ContentDir. Matching folders are skipped during scans.
	IgnorePatterns []string `json:"ignorePatterns"`

	// CodeStyle is the chroma style name used for fenced code blocks.
	CodeStyle string `json:"codeStyle"`

	// AnalyticsID, when non-empty, enables the analytics snippet in the
	// page shell.
	AnalyticsID string `json:"analyticsID"`
}

func DefaultConfig() *Config {
	return &Config{
		ContentDir:     "content/blog",
		PagesDir:       "content/pages",
		StaticDir:      "static",
		BlogPathPrefix: "/blog",
		WordsPerMinute: 200,
		IgnorePatterns: []string{".*", "_*"},
		CodeStyle:      "github-dark",
	}
}

// LoadConfig decodes a site.config.json payload over the defaults, so a
// config file only needs to state what it changes.
func LoadConfig(configBytes []byte) (*Config, error) {
	c := DefaultConfig()
	if len(configBytes) == 0 {
		return c, nil
	}
	if err := jsonutil.ParseInto(configBytes, c); err != nil {
		return nil, fmt.Errorf("app: could not decode site config: %w", err)
	}
	if c.WordsPerMinute <= 0 {
		return nil, fmt.Errorf("app: wordsPerMinute must be positive, got %d", c.WordsPerMinute)
	}
	return c, nil
}
