// Package markdown parses post bodies into a typed document tree.
//
// The grammar runs in two phases: block-level constructs (headings, lists,
// block quotes, code fences, paragraphs, thematic breaks, raw HTML) are
// segmented first by blank-line boundaries and block-opening tokens; inline
// constructs (emphasis, strong, links, images, inline code) are then parsed
// within each block's text span. Parsing is pure and idempotent, and it
// never fails: malformed spans degrade to literal text nodes.
package markdown

// NodeKind discriminates the document tree's node variants.
type NodeKind uint8

const (
	KindDocument NodeKind = iota
	KindHeading
	KindParagraph
	KindText
	KindEmphasis
	KindStrong
	KindLink
	KindImage
	KindList
	KindListItem
	KindQuote
	KindCodeBlock
	KindInlineCode
	KindRule
	KindRawHTML
)

// Node is the sealed interface over the document tree variants. Renderers
// are expected to switch over every concrete type and treat an unknown node
// as a hard error rather than silently skipping it.
type Node interface {
	Kind() NodeKind
}

// Document is the synthetic root container returned by Parse.
type Document struct {
	Children []Node
}

// Heading is an ATX heading. ID is the in-page anchor slug; it is only set
// when the heading's first child is plain text that slugifies to something
// non-empty. Headings opening with rich content (emphasis, links, code)
// carry no anchor.
type Heading struct {
	Level    int
	ID       string
	Children []Node
}

type Paragraph struct {
	Children []Node
}

type Text struct {
	Value string
}

type Emphasis struct {
	Children []Node
}

type Strong struct {
	Children []Node
}

type Link struct {
	Href     string
	Children []Node
}

type Image struct {
	Src string
	Alt string
}

// List holds one or more items. Start is the first item's ordinal for
// ordered lists (1 for unordered lists).
type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

type ListItem struct {
	Children []Node
}

type Quote struct {
	Children []Node
}

// CodeBlock is a fenced code block. Language is the tag following the
// opening fence ("" when absent). Source is captured verbatim; no inline
// parsing happens inside a fence.
type CodeBlock struct {
	Language string
	Source   string
}

type InlineCode struct {
	Children []Node
}

type Rule struct{}

type RawHTML struct {
	HTML string
}

func (*Document) Kind() NodeKind   { return KindDocument }
func (*Heading) Kind() NodeKind    { return KindHeading }
func (*Paragraph) Kind() NodeKind  { return KindParagraph }
func (*Text) Kind() NodeKind       { return KindText }
func (*Emphasis) Kind() NodeKind   { return KindEmphasis }
func (*Strong) Kind() NodeKind     { return KindStrong }
func (*Link) Kind() NodeKind       { return KindLink }
func (*Image) Kind() NodeKind      { return KindImage }
func (*List) Kind() NodeKind       { return KindList }
func (*ListItem) Kind() NodeKind   { return KindListItem }
func (*Quote) Kind() NodeKind      { return KindQuote }
func (*CodeBlock) Kind() NodeKind  { return KindCodeBlock }
func (*InlineCode) Kind() NodeKind { return KindInlineCode }
func (*Rule) Kind() NodeKind       { return KindRule }
func (*RawHTML) Kind() NodeKind    { return KindRawHTML }
