package build

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/kit/jsonutil"
)

const postSrc = `---
title: 'A Build Test Post'
date: '2022-03-04'
tags:
  - 'testing'
---
Intro paragraph with a [relative link](notes.txt) and an image ![fig](fig.png).

## A Section Heading

` + "```go\nfmt.Println(\"hi\")\n```\n"

func testBuilder(t *testing.T) (*Builder, string) {
	t.Helper()

	contentFS := fstest.MapFS{
		"a-build-test-post/index.md":  &fstest.MapFile{Data: []byte(postSrc)},
		"a-build-test-post/fig.png":   &fstest.MapFile{Data: []byte("png-bytes")},
		"a-build-test-post/cover.png": &fstest.MapFile{Data: []byte("cover-bytes")},
		"second-post/index.md": &fstest.MapFile{
			Data: []byte("---\ntitle: 'Second'\ndate: '2021-06-07'\n---\nBody text.\n"),
		},
	}
	pagesFS := fstest.MapFS{
		"index.md":    &fstest.MapFile{Data: []byte("---\ntitle: 'Home'\n---\nWelcome.\n")},
		"projects.md": &fstest.MapFile{Data: []byte("---\ntitle: 'Projects'\n---\nStuff.\n")},
	}
	staticFS := fstest.MapFS{
		"css/site.css": &fstest.MapFile{Data: []byte("body {  color : red ; }")},
	}

	cfg := app.DefaultConfig()
	store := content.NewStore(cfg, contentFS)
	return New(cfg, store, pagesFS, staticFS), t.TempDir()
}

func TestBuildProducesSite(t *testing.T) {
	builder, outDir := testBuilder(t)

	if err := builder.Build(context.Background(), outDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for _, rel := range []string{
		"index.html",
		"projects/index.html",
		"blog/index.html",
		"blog/a-build-test-post/index.html",
		"blog/a-build-test-post/fig.png",
		"blog/a-build-test-post/cover.png",
		"blog/second-post/index.html",
		"feed.xml",
		"sitemap.xml",
		"posts.json",
		"css/highlight.css",
		"css/site.css",
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
	}
}

func TestBuildPostPageContent(t *testing.T) {
	builder, outDir := testBuilder(t)
	if err := builder.Build(context.Background(), outDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "blog", "a-build-test-post", "index.html"))
	if err != nil {
		t.Fatalf("could not read post page: %v", err)
	}
	page := string(data)

	for _, want := range []string{
		"<h1>A Build Test Post</h1>",
		`id="a-section-heading"`,
		`src="/blog/a-build-test-post/fig.png"`,
		`href="/blog/a-build-test-post/notes.txt"`,
		"min read",
		"<li>testing</li>",
		"chroma",
		`rel="canonical"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in post page", want)
		}
	}
}

func TestBuildMinifiesCSS(t *testing.T) {
	builder, outDir := testBuilder(t)
	if err := builder.Build(context.Background(), outDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "css", "site.css"))
	if err != nil {
		t.Fatalf("could not read css: %v", err)
	}
	if strings.Contains(string(data), "  ") {
		t.Fatalf("expected minified css, got %q", data)
	}
}

func TestBuildFeedIsValidXML(t *testing.T) {
	builder, outDir := testBuilder(t)
	if err := builder.Build(context.Background(), outDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "feed.xml"))
	if err != nil {
		t.Fatalf("could not read feed: %v", err)
	}
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		t.Fatalf("feed is not valid xml: %v", err)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(feed.Entries))
	}
	// Newest first.
	if feed.Entries[0].Title != "A Build Test Post" {
		t.Fatalf("expected newest entry first, got %q", feed.Entries[0].Title)
	}
}

func TestBuildManifestListsPostsNewestFirst(t *testing.T) {
	builder, outDir := testBuilder(t)
	if err := builder.Build(context.Background(), outDir); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "posts.json"))
	if err != nil {
		t.Fatalf("could not read manifest: %v", err)
	}
	entries, err := jsonutil.Parse[[]manifestEntry](data)
	if err != nil {
		t.Fatalf("manifest is not valid json: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "a-build-test-post" || entries[1].ID != "second-post" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].ID, entries[1].ID)
	}
	if entries[0].URLPath != "/blog/a-build-test-post" {
		t.Fatalf("unexpected url path %q", entries[0].URLPath)
	}
	if entries[0].ReadingTimeMinutes < 1 {
		t.Fatalf("expected positive reading time, got %d", entries[0].ReadingTimeMinutes)
	}
}

func TestBrokenPostFailsOnlyItsRoute(t *testing.T) {
	contentFS := fstest.MapFS{
		"good-post/index.md":   &fstest.MapFile{Data: []byte("---\ntitle: 'Good'\ndate: '2021-01-01'\n---\nBody.\n")},
		"broken-post/index.md": &fstest.MapFile{Data: []byte("---\ntitle: 'No Date'\n---\nBody.\n")},
	}
	pagesFS := fstest.MapFS{
		"index.md": &fstest.MapFile{Data: []byte("---\ntitle: 'Home'\n---\nWelcome.\n")},
	}

	cfg := app.DefaultConfig()
	store := content.NewStore(cfg, contentFS)
	builder := New(cfg, store, pagesFS, nil)
	outDir := t.TempDir()

	err := builder.Build(context.Background(), outDir)
	if err == nil {
		t.Fatal("expected build error for broken post")
	}
	if !errors.Is(err, content.ErrMalformedFrontmatter) {
		t.Fatalf("expected frontmatter error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken-post") {
		t.Fatalf("expected offending id in error, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(outDir, "blog", "good-post", "index.html")); statErr != nil {
		t.Fatalf("expected healthy route to build: %v", statErr)
	}
}
