// Package htmlrender walks a markdown document tree and produces HTML.
//
// Rendering is a single stateless tree walk over a tree owned by the caller.
// Dispatch is an exhaustive switch over the node variants: an unknown node
// is a hard error, never a silent fallback. The only injected collaborator
// is the TransformURL hook, which must itself be pure.
package htmlrender

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/tmheller/tmheller.dev/markdown"
)

// Options configures a single render call.
type Options struct {
	// TransformURL rewrites link hrefs and image srcs. Absolute URLs (those
	// carrying a URL scheme) are never passed through it. A nil hook leaves
	// every URL unchanged.
	TransformURL func(url string) string

	// CodeStyle is the chroma style used for fenced code blocks with a
	// language tag. Empty selects a fallback style.
	CodeStyle string
}

// schemeRe matches URLs that carry a scheme (https:, mailto:, etc.), plus
// protocol-relative URLs. Those pass through untransformed.
var schemeRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*:|//)`)

// Render produces HTML for the given document tree.
func Render(doc *markdown.Document, opts Options) (string, error) {
	var b strings.Builder
	for _, child := range doc.Children {
		if err := renderNode(&b, child, opts); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func renderNode(b *strings.Builder, node markdown.Node, opts Options) error {
	switch n := node.(type) {
	case *markdown.Heading:
		return renderHeading(b, n, opts)

	case *markdown.Paragraph:
		b.WriteString("<p>")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</p>\n")
		return nil

	case *markdown.Text:
		b.WriteString(html.EscapeString(n.Value))
		return nil

	case *markdown.Emphasis:
		b.WriteString("<em>")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</em>")
		return nil

	case *markdown.Strong:
		b.WriteString("<strong>")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</strong>")
		return nil

	case *markdown.Link:
		fmt.Fprintf(b, `<a href="%s">`, html.EscapeString(resolveURL(n.Href, opts)))
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</a>")
		return nil

	case *markdown.Image:
		fmt.Fprintf(b, `<img src="%s" alt="%s" />`,
			html.EscapeString(resolveURL(n.Src, opts)),
			html.EscapeString(n.Alt))
		return nil

	case *markdown.List:
		return renderList(b, n, opts)

	case *markdown.ListItem:
		b.WriteString("<li>")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</li>\n")
		return nil

	case *markdown.Quote:
		b.WriteString("<blockquote>\n")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</blockquote>\n")
		return nil

	case *markdown.CodeBlock:
		return renderCodeBlock(b, n, opts)

	case *markdown.InlineCode:
		b.WriteString("<code>")
		if err := renderChildren(b, n.Children, opts); err != nil {
			return err
		}
		b.WriteString("</code>")
		return nil

	case *markdown.Rule:
		b.WriteString("<hr />\n")
		return nil

	case *markdown.RawHTML:
		b.WriteString(n.HTML)
		b.WriteString("\n")
		return nil

	case *markdown.Document:
		return renderChildren(b, n.Children, opts)

	default:
		return fmt.Errorf("htmlrender: unhandled node kind %T", node)
	}
}

func renderChildren(b *strings.Builder, children []markdown.Node, opts Options) error {
	for _, child := range children {
		if err := renderNode(b, child, opts); err != nil {
			return err
		}
	}
	return nil
}

// renderHeading emits the anchor id captured at parse time, when present.
// Headings that opened with rich content have no id and render bare.
func renderHeading(b *strings.Builder, h *markdown.Heading, opts Options) error {
	if h.ID != "" {
		fmt.Fprintf(b, `<h%d id="%s">`, h.Level, html.EscapeString(h.ID))
	} else {
		fmt.Fprintf(b, "<h%d>", h.Level)
	}
	if err := renderChildren(b, h.Children, opts); err != nil {
		return err
	}
	fmt.Fprintf(b, "</h%d>\n", h.Level)
	return nil
}

func renderList(b *strings.Builder, list *markdown.List, opts Options) error {
	if list.Ordered {
		if list.Start != 1 {
			fmt.Fprintf(b, "<ol start=\"%d\">\n", list.Start)
		} else {
			b.WriteString("<ol>\n")
		}
	} else {
		b.WriteString("<ul>\n")
	}
	for _, item := range list.Items {
		if err := renderNode(b, item, opts); err != nil {
			return err
		}
	}
	if list.Ordered {
		b.WriteString("</ol>\n")
	} else {
		b.WriteString("</ul>\n")
	}
	return nil
}

func resolveURL(url string, opts Options) string {
	if opts.TransformURL == nil || schemeRe.MatchString(url) {
		return url
	}
	return opts.TransformURL(url)
}
