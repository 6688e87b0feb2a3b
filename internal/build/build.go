// Package build generates the static site: one HTML file per blog route
// and static page, copied post assets, minified CSS/JS, an Atom feed, and a
// sitemap. Routes build independently and in parallel; one broken post
// fails its own route and is reported with its id, without corrupting the
// rest of the build. The caller decides whether any failure fails the whole
// build.
package build

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/kit/colorlog"
	"github.com/tmheller/tmheller.dev/markdown/htmlrender"
	"github.com/tmheller/tmheller.dev/site/pages"
)

type Builder struct {
	cfg      *app.Config
	store    *content.Store
	pagesFS  fs.FS
	staticFS fs.FS // nil when the site has no static asset dir
	refresh  template.HTML
	log      *slog.Logger
}

// WithLiveReload injects the dev-refresh script into every generated page
// shell. Only the dev server should use this.
func (b *Builder) WithLiveReload(script template.HTML) *Builder {
	b.refresh = script
	return b
}

func New(cfg *app.Config, store *content.Store, pagesFS, staticFS fs.FS) *Builder {
	return &Builder{
		cfg:      cfg,
		store:    store,
		pagesFS:  pagesFS,
		staticFS: staticFS,
		log:      colorlog.New("build"),
	}
}

// Build writes the whole site under outDir. The returned error joins every
// per-route failure (each carrying its content id) plus any structural
// failure; nil means a complete site.
func (b *Builder) Build(ctx context.Context, outDir string) error {
	routes, listErr := b.store.EnumerateRoutes()
	if listErr != nil {
		// Broken posts already carry their ids; surface them in the build
		// log and keep building the healthy routes.
		b.log.Error("some posts failed to list", "error", listErr)
	}

	var mu sync.Mutex
	var failures []error
	fail := func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}
	if listErr != nil {
		fail(listErr)
	}

	builtPosts := make([]*content.Post, 0, len(routes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, route := range routes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			post, err := b.buildPostRoute(route, outDir)
			if err != nil {
				b.log.Error("route failed", "id", route.ContentID, "error", err)
				fail(fmt.Errorf("route %s: %w", route.URLPath, err))
				return nil
			}
			mu.Lock()
			builtPosts = append(builtPosts, post)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sitePages, err := pages.Load(b.pagesFS)
	if err != nil {
		fail(err)
	} else {
		for _, page := range sitePages {
			if err := b.buildStaticPage(page, outDir); err != nil {
				b.log.Error("page failed", "slug", page.Slug, "error", err)
				fail(fmt.Errorf("page %q: %w", page.Slug, err))
			}
		}
	}

	if err := b.buildBlogIndex(builtPosts, outDir); err != nil {
		fail(fmt.Errorf("blog index: %w", err))
	}
	if err := b.writeFeed(builtPosts, outDir); err != nil {
		fail(fmt.Errorf("feed: %w", err))
	}
	if err := b.writeManifest(builtPosts, outDir); err != nil {
		fail(fmt.Errorf("manifest: %w", err))
	}
	if err := b.writeSitemap(routes, sitePages, outDir); err != nil {
		fail(fmt.Errorf("sitemap: %w", err))
	}
	if err := b.writeHighlightCSS(outDir); err != nil {
		fail(fmt.Errorf("highlight css: %w", err))
	}
	if err := b.copyStaticAssets(outDir); err != nil {
		fail(fmt.Errorf("static assets: %w", err))
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	b.log.Info("site built", "routes", len(routes), "pages", len(sitePages), "out", outDir)
	return nil
}

func (b *Builder) writeHighlightCSS(outDir string) error {
	css, err := htmlrender.StyleSheet(b.cfg.CodeStyle)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(outDir, "css", "highlight.css"), []byte(css))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
