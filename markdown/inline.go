package markdown

import "strings"

// parseInline parses a block's text span into inline nodes. Any construct
// that fails to terminate (an unclosed emphasis run, a bracket with no
// destination) is emitted as literal text instead of an error.
func parseInline(s string) []Node {
	var nodes []Node
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			nodes = append(nodes, &Text{Value: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]

		switch c {
		case '\\':
			if i+1 < len(s) {
				literal.WriteByte(s[i+1])
				i += 2
				continue
			}
			literal.WriteByte(c)
			i++

		case '`':
			end := strings.IndexByte(s[i+1:], '`')
			if end < 0 {
				literal.WriteByte(c)
				i++
				continue
			}
			flushLiteral()
			code := s[i+1 : i+1+end]
			nodes = append(nodes, &InlineCode{Children: []Node{&Text{Value: code}}})
			i += end + 2

		case '!':
			if i+1 < len(s) && s[i+1] == '[' {
				if img, consumed := parseImage(s[i:]); img != nil {
					flushLiteral()
					nodes = append(nodes, img)
					i += consumed
					continue
				}
			}
			literal.WriteByte(c)
			i++

		case '[':
			if link, consumed := parseLink(s[i:]); link != nil {
				flushLiteral()
				nodes = append(nodes, link)
				i += consumed
				continue
			}
			literal.WriteByte(c)
			i++

		case '*', '_':
			if node, consumed := parseEmphasis(s[i:]); node != nil {
				flushLiteral()
				nodes = append(nodes, node)
				i += consumed
				continue
			}
			literal.WriteByte(c)
			i++

		default:
			literal.WriteByte(c)
			i++
		}
	}

	flushLiteral()
	return nodes
}

// parseLink matches [text](dest) at the start of s. Returns (nil, 0) when
// the syntax does not complete.
func parseLink(s string) (*Link, int) {
	text, dest, consumed := parseBracketPair(s)
	if consumed == 0 {
		return nil, 0
	}
	return &Link{Href: dest, Children: parseInline(text)}, consumed
}

// parseImage matches ![alt](src) at the start of s. Alt text is kept as the
// raw span; images have no rich children.
func parseImage(s string) (*Image, int) {
	alt, src, consumed := parseBracketPair(s[1:])
	if consumed == 0 {
		return nil, 0
	}
	return &Image{Src: src, Alt: alt}, consumed + 1
}

// parseBracketPair matches [inner](dest), tolerating nested brackets in the
// inner span. Returns consumed == 0 on malformed syntax.
func parseBracketPair(s string) (inner, dest string, consumed int) {
	if len(s) == 0 || s[0] != '[' {
		return "", "", 0
	}

	depth := 0
	closeIdx := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 || closeIdx+1 >= len(s) || s[closeIdx+1] != '(' {
		return "", "", 0
	}

	parenEnd := strings.IndexByte(s[closeIdx+1:], ')')
	if parenEnd < 0 {
		return "", "", 0
	}
	parenEnd += closeIdx + 1

	inner = s[1:closeIdx]
	dest = strings.TrimSpace(s[closeIdx+2 : parenEnd])
	return inner, dest, parenEnd + 1
}

// parseEmphasis matches *em*, _em_, **strong**, or __strong__ at the start
// of s.
func parseEmphasis(s string) (Node, int) {
	marker := s[0]
	double := len(s) > 1 && s[1] == marker

	delim := string(marker)
	if double {
		delim = delim + delim
	}

	content := s[len(delim):]
	end := strings.Index(content, delim)
	if end <= 0 {
		return nil, 0
	}

	span := content[:end]
	// An emphasis span that opens or closes on whitespace is treated as
	// literal punctuation, matching typical renderer tolerance.
	if strings.TrimSpace(span) == "" || span[0] == ' ' || span[len(span)-1] == ' ' {
		return nil, 0
	}

	children := parseInline(span)
	consumed := len(delim)*2 + len(span)
	if double {
		return &Strong{Children: children}, consumed
	}
	return &Emphasis{Children: children}, consumed
}
