package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tmheller/tmheller.dev/kit/slugutil"
)

// Parse converts a markdown body (frontmatter already removed) into a
// document tree rooted at a synthetic Document node. It never returns an
// error: malformed constructs degrade to literal text.
func Parse(body string) *Document {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	return &Document{Children: parseBlocks(lines)}
}

var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	ruleRe        = regexp.MustCompile(`^(\-{3,}|\*{3,}|_{3,})\s*$`)
	orderedItemRe = regexp.MustCompile(`^(\s*)(\d+)[.)]\s+(.*)$`)
	bulletItemRe  = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	htmlOpenRe    = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9-]*|!--|/)`)
)

func parseBlocks(lines []string) []Node {
	var nodes []Node

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			block, consumed := parseFence(lines[i:])
			nodes = append(nodes, block)
			i += consumed

		case ruleRe.MatchString(trimmed):
			nodes = append(nodes, &Rule{})
			i++

		case headingRe.MatchString(line):
			nodes = append(nodes, parseHeading(line))
			i++

		case strings.HasPrefix(trimmed, ">"):
			quote, consumed := parseQuote(lines[i:])
			nodes = append(nodes, quote)
			i += consumed

		case isListItemLine(line):
			list, consumed := parseList(lines[i:], indentWidth(line))
			nodes = append(nodes, list)
			i += consumed

		case htmlOpenRe.MatchString(trimmed):
			raw, consumed := parseRawHTML(lines[i:])
			nodes = append(nodes, raw)
			i += consumed

		default:
			para, consumed := parseParagraph(lines[i:])
			nodes = append(nodes, para)
			i += consumed
		}
	}

	return nodes
}

// parseFence captures a fenced code block. The language tag is whatever
// immediately follows the opening fence. An unterminated fence runs to the
// end of the input rather than failing the parse.
func parseFence(lines []string) (*CodeBlock, int) {
	opening := strings.TrimSpace(lines[0])
	language := strings.TrimSpace(strings.TrimPrefix(opening, "```"))

	var source strings.Builder
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "```" {
			return &CodeBlock{Language: language, Source: source.String()}, i + 1
		}
		source.WriteString(lines[i])
		source.WriteString("\n")
	}
	return &CodeBlock{Language: language, Source: source.String()}, len(lines)
}

func parseHeading(line string) *Heading {
	m := headingRe.FindStringSubmatch(line)
	h := &Heading{
		Level:    len(m[1]),
		Children: parseInline(strings.TrimSpace(m[2])),
	}
	// Anchors are derived only from headings that open with plain text.
	// Headings starting with rich content get no anchor.
	if len(h.Children) > 0 {
		if text, ok := h.Children[0].(*Text); ok {
			h.ID = slugutil.ForAnchor(text.Value)
		}
	}
	return h
}

func parseQuote(lines []string) (*Quote, int) {
	var inner []string
	i := 0
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		content := strings.TrimPrefix(trimmed, ">")
		content = strings.TrimPrefix(content, " ")
		inner = append(inner, content)
	}
	return &Quote{Children: parseBlocks(inner)}, i
}

func isListItemLine(line string) bool {
	return bulletItemRe.MatchString(line) || orderedItemRe.MatchString(line)
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// parseList consumes consecutive list lines at the given indent. Marker
// lines indented deeper than the base open a nested list inside the current
// item; indented non-marker lines continue the current item's text.
func parseList(lines []string, baseIndent int) (*List, int) {
	list := &List{Start: 1}

	if m := orderedItemRe.FindStringSubmatch(lines[0]); m != nil {
		list.Ordered = true
		if n, err := strconv.Atoi(m[2]); err == nil {
			list.Start = n
		}
	}

	var itemText string
	flush := func() {
		if itemText != "" {
			item := &ListItem{Children: parseInline(itemText)}
			list.Items = append(list.Items, item)
			itemText = ""
		}
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			break
		}

		if isListItemLine(line) {
			indent := indentWidth(line)
			if indent > baseIndent && len(list.Items)+boolToInt(itemText != "") > 0 {
				// Nested list: attach to the item currently being built.
				flush()
				sublist, consumed := parseList(lines[i:], indent)
				if len(list.Items) == 0 {
					list.Items = append(list.Items, &ListItem{})
				}
				last := list.Items[len(list.Items)-1]
				last.Children = append(last.Children, sublist)
				i += consumed
				continue
			}
			if indent < baseIndent {
				break
			}
			flush()
			itemText = stripListMarker(line)
			i++
			continue
		}

		// Continuation line of the current item.
		if itemText == "" {
			break
		}
		itemText += " " + strings.TrimSpace(line)
		i++
	}

	flush()
	return list, i
}

func stripListMarker(line string) string {
	if m := bulletItemRe.FindStringSubmatch(line); m != nil {
		return m[2]
	}
	if m := orderedItemRe.FindStringSubmatch(line); m != nil {
		return m[3]
	}
	return strings.TrimSpace(line)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseRawHTML(lines []string) (*RawHTML, int) {
	var raw []string
	i := 0
	for ; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			break
		}
		raw = append(raw, lines[i])
	}
	return &RawHTML{HTML: strings.Join(raw, "\n")}, i
}

// parseParagraph collects lines until a blank line or the start of another
// block construct.
func parseParagraph(lines []string) (*Paragraph, int) {
	var collected []string
	i := 0
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}
		if i > 0 && startsBlock(lines[i]) {
			break
		}
		collected = append(collected, trimmed)
	}
	return &Paragraph{Children: parseInline(strings.Join(collected, "\n"))}, i
}

func startsBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") ||
		ruleRe.MatchString(trimmed) ||
		headingRe.MatchString(line) ||
		strings.HasPrefix(trimmed, ">") ||
		isListItemLine(line) ||
		htmlOpenRe.MatchString(trimmed)
}
