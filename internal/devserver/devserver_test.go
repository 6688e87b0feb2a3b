package devserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tmheller/tmheller.dev/app"
)

const devPostSrc = "---\ntitle: 'Dev Post'\ndate: '2023-05-06'\n---\nBody text.\n"

func testServer(t *testing.T) (*Server, *app.Config) {
	t.Helper()

	root := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.ContentDir = filepath.Join(root, "blog")
	cfg.PagesDir = filepath.Join(root, "pages")
	cfg.StaticDir = filepath.Join(root, "static") // absent on purpose

	mustWrite(t, filepath.Join(cfg.ContentDir, "dev-post", "index.md"), devPostSrc)
	mustWrite(t, filepath.Join(cfg.ContentDir, "keeper", "index.md"),
		"---\ntitle: 'Keeper'\ndate: '2023-01-02'\n---\nStays.\n")
	mustWrite(t, filepath.Join(cfg.PagesDir, "index.md"), "---\ntitle: 'Home'\n---\nHi.\n")

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}
	t.Cleanup(func() {
		if dir := srv.serveDir(); dir != "" {
			os.RemoveAll(dir)
		}
	})
	return srv, cfg
}

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRebuildDropsDeletedPosts(t *testing.T) {
	srv, cfg := testServer(t)

	srv.rebuild(context.Background())
	first := srv.serveDir()
	if first == "" {
		t.Fatal("expected a serve dir after first rebuild")
	}
	if _, err := os.Stat(filepath.Join(first, "blog", "dev-post", "index.html")); err != nil {
		t.Fatalf("expected dev-post page after first rebuild: %v", err)
	}

	if err := os.RemoveAll(filepath.Join(cfg.ContentDir, "dev-post")); err != nil {
		t.Fatalf("could not delete post: %v", err)
	}
	srv.rebuild(context.Background())

	second := srv.serveDir()
	if second == first {
		t.Fatal("expected rebuild to swap in a fresh dir")
	}
	if _, err := os.Stat(filepath.Join(second, "blog", "dev-post", "index.html")); !os.IsNotExist(err) {
		t.Fatalf("expected deleted post's page to be gone, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(second, "blog", "keeper", "index.html")); err != nil {
		t.Fatalf("expected surviving post's page: %v", err)
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatalf("expected old serve dir to be removed, stat err = %v", err)
	}
}

func TestRebuildKeepsLastGoodOutputOnFailure(t *testing.T) {
	srv, cfg := testServer(t)

	srv.rebuild(context.Background())
	good := srv.serveDir()
	if good == "" {
		t.Fatal("expected a serve dir after first rebuild")
	}

	// A post with no date fails its route, which fails the build.
	mustWrite(t, filepath.Join(cfg.ContentDir, "dev-post", "index.md"),
		"---\ntitle: 'No Date'\n---\nBroken.\n")
	srv.rebuild(context.Background())

	if srv.serveDir() != good {
		t.Fatal("expected failed rebuild to keep serving the last good output")
	}
	if _, err := os.Stat(filepath.Join(good, "blog", "keeper", "index.html")); err != nil {
		t.Fatalf("expected last good output to remain on disk: %v", err)
	}
}
