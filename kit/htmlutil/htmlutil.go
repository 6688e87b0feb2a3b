// Package htmlutil renders individual HTML elements (used for head/SEO
// tags) and extracts plain text from rendered HTML fragments.
package htmlutil

import (
	"fmt"
	"html/template"
	"maps"
	"slices"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

type Element struct {
	Tag         string
	Attributes  map[string]string
	TextContent string
	SelfClosing bool
}

// see https://html.spec.whatwg.org/multipage/syntax.html#void-elements
var selfClosingTags = []string{
	"area", "base", "br", "col", "embed", "hr", "img",
	"input", "link", "meta", "source", "track", "wbr",
}

func RenderElement(el *Element) (template.HTML, error) {
	var b strings.Builder
	if err := RenderElementToBuilder(el, &b); err != nil {
		return "", fmt.Errorf("could not render element: %w", err)
	}
	return template.HTML(b.String()), nil
}

func RenderElementToBuilder(el *Element, b *strings.Builder) error {
	escapedTag := template.HTMLEscapeString(el.Tag)
	if escapedTag == "" {
		return fmt.Errorf("element has no tag")
	}

	isSelfClosing := slices.Contains(selfClosingTags, escapedTag) || el.SelfClosing

	b.WriteString("<")
	b.WriteString(escapedTag)

	// Attributes render in sorted key order so output is deterministic.
	keys := slices.Collect(maps.Keys(el.Attributes))
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(template.HTMLEscapeString(k))
		b.WriteString(`="`)
		b.WriteString(template.HTMLEscapeString(el.Attributes[k]))
		b.WriteString(`"`)
	}

	if isSelfClosing {
		b.WriteString(" />")
		return nil
	}

	b.WriteString(">")
	b.WriteString(template.HTMLEscapeString(el.TextContent))
	b.WriteString("</")
	b.WriteString(escapedTag)
	b.WriteString(">")
	return nil
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "li": true, "ul": true, "ol": true, "blockquote": true,
	"div": true, "br": true, "hr": true, "tr": true, "td": true, "th": true,
	"article": true, "section": true, "header": true, "footer": true,
	"figcaption": true,
}

// ExtractText walks an HTML fragment and returns its visible text, with
// whitespace collapsed, truncated near maxLen on a word boundary. Used to
// derive meta descriptions from rendered post bodies.
func ExtractText(fragment string, maxLen int) (string, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("could not parse html fragment: %w", err)
	}

	// Inline elements contribute their text verbatim; only block boundaries
	// introduce a separator. Joining every text node with a space would put
	// one before punctuation that follows an inline element.
	var raw strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			raw.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "pre") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			raw.WriteByte(' ')
		}
	}
	walk(root)

	text := strings.Join(strings.Fields(raw.String()), " ")
	if maxLen <= 0 || len(text) <= maxLen {
		return text, nil
	}

	cut := strings.LastIndexByte(text[:maxLen], ' ')
	if cut <= 0 {
		cut = maxLen
	}
	return strings.TrimRight(text[:cut], " ,.;:") + "…", nil
}
