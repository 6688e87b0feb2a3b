package htmlrender

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/tmheller/tmheller.dev/markdown"
)

// renderCodeBlock dispatches on the presence of a language tag: tagged
// fences go through the chroma highlighter for that language, untagged
// fences render as a plain preformatted block.
func renderCodeBlock(b *strings.Builder, cb *markdown.CodeBlock, opts Options) error {
	if cb.Language == "" {
		fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", html.EscapeString(cb.Source))
		return nil
	}
	return highlight(b, cb.Language, cb.Source, opts.CodeStyle)
}

func highlight(b *strings.Builder, language, source, styleName string) error {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("htmlrender: could not tokenise %s code block: %w", language, err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.TabWidth(2),
	)
	if err := formatter.Format(b, style, iterator); err != nil {
		return fmt.Errorf("htmlrender: could not format %s code block: %w", language, err)
	}
	b.WriteString("\n")
	return nil
}

// StyleSheet returns the CSS for the chroma classes emitted by tagged code
// blocks, so the builder can write it once per site instead of inlining
// styles per block.
func StyleSheet(styleName string) (string, error) {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("htmlrender: could not write highlight stylesheet: %w", err)
	}
	return b.String(), nil
}
