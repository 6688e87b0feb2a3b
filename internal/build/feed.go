package build

import (
	"encoding/xml"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/kit/htmlutil"
	"github.com/tmheller/tmheller.dev/kit/jsonutil"
	"github.com/tmheller/tmheller.dev/markdown/htmlrender"
	"github.com/tmheller/tmheller.dev/site/pages"
)

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Links   []atomLink  `xml:"link"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Link    atomLink `xml:"link"`
	Updated string   `xml:"updated"`
	Summary string   `xml:"summary,omitempty"`
}

// writeFeed emits feed.xml for the successfully built posts, newest first.
func (b *Builder) writeFeed(posts []*content.Post, outDir string) error {
	sorted := make([]*content.Post, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	feed := atomFeed{
		XMLNS: "http://www.w3.org/2005/Atom",
		Title: app.SiteTitle,
		ID:    app.Origin + "/",
		Links: []atomLink{
			{Href: app.Origin + "/feed.xml", Rel: "self"},
			{Href: app.Origin + "/"},
		},
		Updated: time.Now().UTC().Format(time.RFC3339),
	}
	if len(sorted) > 0 {
		feed.Updated = sorted[0].Date.UTC().Format(time.RFC3339)
	}

	for _, post := range sorted {
		postURL := app.Origin + path.Join(b.cfg.BlogPathPrefix, post.ID)

		summary := ""
		if bodyHTML, err := htmlrender.Render(post.Document(), b.store.RenderOptions(post.ID)); err == nil {
			summary, _ = htmlutil.ExtractText(bodyHTML, metaDescriptionLen)
		}

		feed.Entries = append(feed.Entries, atomEntry{
			Title:   post.Title,
			ID:      postURL,
			Link:    atomLink{Href: postURL},
			Updated: post.Date.UTC().Format(time.RFC3339),
			Summary: summary,
		})
	}

	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return err
	}
	payload := append([]byte(xml.Header), data...)
	return writeFile(filepath.Join(outDir, "feed.xml"), payload)
}

type manifestEntry struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Date               string   `json:"date"`
	Tags               []string `json:"tags"`
	URLPath            string   `json:"urlPath"`
	ReadingTimeMinutes int      `json:"readingTimeMinutes"`
}

// writeManifest emits posts.json, a machine-readable listing of the built
// posts, newest first. The client-side archive filter consumes it.
func (b *Builder) writeManifest(posts []*content.Post, outDir string) error {
	sorted := make([]*content.Post, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	entries := make([]manifestEntry, 0, len(sorted))
	for _, post := range sorted {
		entries = append(entries, manifestEntry{
			ID:                 post.ID,
			Title:              post.Title,
			Date:               post.Date.Format("2006-01-02"),
			Tags:               post.Tags,
			URLPath:            path.Join(b.cfg.BlogPathPrefix, post.ID),
			ReadingTimeMinutes: post.ReadingTimeMinutes,
		})
	}

	data, err := jsonutil.Serialize(entries)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(outDir, "posts.json"), data)
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (b *Builder) writeSitemap(routes []content.RouteDescriptor, sitePages []pages.Page, outDir string) error {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	for _, page := range sitePages {
		set.URLs = append(set.URLs, sitemapURL{Loc: app.Origin + "/" + page.Slug})
	}
	set.URLs = append(set.URLs, sitemapURL{Loc: app.Origin + b.cfg.BlogPathPrefix})
	for _, route := range routes {
		set.URLs = append(set.URLs, sitemapURL{Loc: app.Origin + route.URLPath})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	payload := append([]byte(xml.Header), data...)
	return writeFile(filepath.Join(outDir, "sitemap.xml"), payload)
}
