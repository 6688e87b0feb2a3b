package pages

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md":    &fstest.MapFile{Data: []byte("---\ntitle: 'Home'\n---\nWelcome to **the site**.\n")},
		"projects.md": &fstest.MapFile{Data: []byte("---\ntitle: 'Projects'\n---\n## Things I Built\n")},
		"notes.txt":   &fstest.MapFile{Data: []byte("not a page")},
	}

	loaded, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(loaded))
	}

	home := loaded[0]
	if home.Slug != "" || home.Title != "Home" {
		t.Fatalf("expected home page first, got %+v", home)
	}
	if !strings.Contains(string(home.HTML), "<strong>the site</strong>") {
		t.Fatalf("expected rendered markdown, got %q", home.HTML)
	}

	projects := loaded[1]
	if projects.Slug != "projects" {
		t.Fatalf("expected projects slug, got %q", projects.Slug)
	}
	if !strings.Contains(string(projects.HTML), "<h2") {
		t.Fatalf("expected rendered heading, got %q", projects.HTML)
	}
}

func TestLoadSlugOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"give.md": &fstest.MapFile{Data: []byte("---\ntitle: 'Donations'\nslug: 'donate'\n---\nSupport the site.\n")},
	}
	loaded, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded[0].Slug != "donate" {
		t.Fatalf("expected slug override, got %q", loaded[0].Slug)
	}
}
