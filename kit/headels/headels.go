// Package headels builds the HTML head block for a page: title, meta
// description, Open Graph / Twitter properties, canonical link.
//
// Deduplication behavior: the title and meta description are last-wins
// (later calls replace earlier ones); for every other element, exact
// duplicates are dropped so components can independently request the same
// tag without doubling it in the output.
package headels

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tmheller/tmheller.dev/kit/htmlutil"
)

type HeadEls struct {
	title string
	desc  string
	els   []*htmlutil.Element
}

func New() *HeadEls {
	return &HeadEls{}
}

func (h *HeadEls) Title(title string) *HeadEls {
	h.title = title
	return h
}

func (h *HeadEls) Description(desc string) *HeadEls {
	h.desc = desc
	return h
}

func (h *HeadEls) Meta(attrs map[string]string) *HeadEls {
	return h.add(&htmlutil.Element{Tag: "meta", Attributes: attrs})
}

func (h *HeadEls) Property(property, content string) *HeadEls {
	return h.Meta(map[string]string{"property": property, "content": content})
}

func (h *HeadEls) Name(name, content string) *HeadEls {
	return h.Meta(map[string]string{"name": name, "content": content})
}

func (h *HeadEls) Link(attrs map[string]string) *HeadEls {
	return h.add(&htmlutil.Element{Tag: "link", Attributes: attrs})
}

func (h *HeadEls) Canonical(url string) *HeadEls {
	return h.Link(map[string]string{"rel": "canonical", "href": url})
}

func (h *HeadEls) add(el *htmlutil.Element) *HeadEls {
	for _, existing := range h.els {
		if equalElements(existing, el) {
			return h
		}
	}
	h.els = append(h.els, el)
	return h
}

// Render emits the whole head block, title first.
func (h *HeadEls) Render() (template.HTML, error) {
	var b strings.Builder

	if err := htmlutil.RenderElementToBuilder(&htmlutil.Element{Tag: "title", TextContent: h.title}, &b); err != nil {
		return "", fmt.Errorf("headels: could not render title: %w", err)
	}
	b.WriteString("\n")

	if h.desc != "" {
		el := &htmlutil.Element{
			Tag:        "meta",
			Attributes: map[string]string{"name": "description", "content": h.desc},
		}
		if err := htmlutil.RenderElementToBuilder(el, &b); err != nil {
			return "", fmt.Errorf("headels: could not render description: %w", err)
		}
		b.WriteString("\n")
	}

	for _, el := range h.els {
		if err := htmlutil.RenderElementToBuilder(el, &b); err != nil {
			return "", fmt.Errorf("headels: could not render %s element: %w", el.Tag, err)
		}
		b.WriteString("\n")
	}

	return template.HTML(b.String()), nil
}

func equalElements(a, b *htmlutil.Element) bool {
	if a.Tag != b.Tag || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for k, v := range a.Attributes {
		if b.Attributes[k] != v {
			return false
		}
	}
	return a.TextContent == b.TextContent
}
