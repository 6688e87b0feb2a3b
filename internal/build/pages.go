package build

import (
	"fmt"
	"html/template"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/kit/headels"
	"github.com/tmheller/tmheller.dev/kit/htmlutil"
	"github.com/tmheller/tmheller.dev/markdown/htmlrender"
	"github.com/tmheller/tmheller.dev/site/pages"
	"github.com/tmheller/tmheller.dev/site/shell"
)

const metaDescriptionLen = 160

// buildPostRoute materializes one post, renders it, and writes its page and
// sibling assets under outDir.
func (b *Builder) buildPostRoute(route content.RouteDescriptor, outDir string) (*content.Post, error) {
	post, err := b.store.Load(route.ContentID)
	if err != nil {
		return nil, err
	}

	bodyHTML, err := htmlrender.Render(post.Document(), b.store.RenderOptions(post.ID))
	if err != nil {
		return nil, err
	}

	excerpt, err := htmlutil.ExtractText(bodyHTML, metaDescriptionLen)
	if err != nil {
		return nil, err
	}

	head := headels.New().
		Title(post.Title + " | " + app.SiteTitle).
		Description(excerpt).
		Property("og:title", post.Title).
		Property("og:description", excerpt).
		Property("og:type", "article").
		Property("og:url", app.Origin+route.URLPath).
		Name("twitter:card", "summary").
		Canonical(app.Origin + route.URLPath)
	if post.HasCoverImage {
		head.Property("og:image", app.Origin+path.Join(route.URLPath, "cover.png"))
	}
	headHTML, err := head.Render()
	if err != nil {
		return nil, err
	}

	var page strings.Builder
	if err := shell.Render(&page, &shell.PageData{
		Head:          headHTML,
		Main:          articleHTML(post, route, bodyHTML),
		AnalyticsID:   b.cfg.AnalyticsID,
		RefreshScript: b.refresh,
	}); err != nil {
		return nil, err
	}

	dest := filepath.Join(outDir, filepath.FromSlash(route.URLPath), "index.html")
	if err := writeFile(dest, []byte(page.String())); err != nil {
		return nil, err
	}

	if err := b.copyPostAssets(route, outDir); err != nil {
		return nil, err
	}
	return post, nil
}

func articleHTML(post *content.Post, route content.RouteDescriptor, bodyHTML string) template.HTML {
	var b strings.Builder
	b.WriteString("<article>\n<header>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", template.HTMLEscapeString(post.Title))
	fmt.Fprintf(&b, `<p class="meta"><time datetime="%s">%s</time> &middot; %d min read</p>`+"\n",
		post.Date.Format("2006-01-02"), post.Date.Format("January 2, 2006"), post.ReadingTimeMinutes)
	if len(post.Tags) > 0 {
		b.WriteString(`<ul class="tags">`)
		for _, tag := range post.Tags {
			fmt.Fprintf(&b, "<li>%s</li>", template.HTMLEscapeString(tag))
		}
		b.WriteString("</ul>\n")
	}
	if post.HasCoverImage {
		fmt.Fprintf(&b, `<img class="cover" src="%s" alt="" />`+"\n", path.Join(route.URLPath, "cover.png"))
	}
	b.WriteString("</header>\n")
	b.WriteString(bodyHTML)
	b.WriteString("</article>\n")
	return template.HTML(b.String())
}

func (b *Builder) copyPostAssets(route content.RouteDescriptor, outDir string) error {
	names, err := b.store.AssetNames(route.ContentID)
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := b.store.ReadAsset(route.ContentID, name)
		if err != nil {
			return err
		}
		dest := filepath.Join(outDir, filepath.FromSlash(route.URLPath), filepath.FromSlash(name))
		if err := writeFile(dest, data); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) buildStaticPage(page pages.Page, outDir string) error {
	title := app.SiteTitle
	if page.Title != "" {
		title = page.Title + " | " + app.SiteTitle
	}

	urlPath := "/" + page.Slug
	head := headels.New().
		Title(title).
		Description(app.SiteDescription).
		Property("og:title", title).
		Property("og:type", "website").
		Canonical(app.Origin + urlPath)
	headHTML, err := head.Render()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := shell.Render(&sb, &shell.PageData{
		Head:          headHTML,
		Main:          page.HTML,
		AnalyticsID:   b.cfg.AnalyticsID,
		RefreshScript: b.refresh,
	}); err != nil {
		return err
	}

	dest := filepath.Join(outDir, filepath.FromSlash(page.Slug), "index.html")
	return writeFile(dest, []byte(sb.String()))
}

// buildBlogIndex writes the post listing at the blog prefix, newest first.
func (b *Builder) buildBlogIndex(posts []*content.Post, outDir string) error {
	sorted := make([]*content.Post, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	var list strings.Builder
	list.WriteString("<h1>Blog</h1>\n<ul class=\"post-list\">\n")
	for _, post := range sorted {
		fmt.Fprintf(&list,
			`<li><a href="%s">%s</a> <time datetime="%s">%s</time></li>`+"\n",
			path.Join(b.cfg.BlogPathPrefix, post.ID),
			template.HTMLEscapeString(post.Title),
			post.Date.Format("2006-01-02"),
			post.Date.Format("January 2, 2006"))
	}
	list.WriteString("</ul>\n")

	head := headels.New().
		Title("Blog | " + app.SiteTitle).
		Description(app.SiteDescription).
		Canonical(app.Origin + b.cfg.BlogPathPrefix)
	headHTML, err := head.Render()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := shell.Render(&sb, &shell.PageData{
		Head:          headHTML,
		Main:          template.HTML(list.String()),
		AnalyticsID:   b.cfg.AnalyticsID,
		RefreshScript: b.refresh,
	}); err != nil {
		return err
	}

	dest := filepath.Join(outDir, filepath.FromSlash(b.cfg.BlogPathPrefix), "index.html")
	return writeFile(dest, []byte(sb.String()))
}
