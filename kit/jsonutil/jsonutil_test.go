package jsonutil

import (
	"strings"
	"testing"
)

func TestSerializeAndParse(t *testing.T) {
	type post struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}

	original := post{Title: "On Parser Combinators", Tags: []string{"fsharp"}}

	data, err := Serialize(original)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(data), "\n\t") {
		t.Fatalf("expected indented output, got %q", data)
	}

	parsed, err := Parse[post](data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed.Title != original.Title || len(parsed.Tags) != 1 {
		t.Fatalf("expected parsed value to match original, got %+v", parsed)
	}

	if _, err := Parse[post]([]byte(`{"title": 7}`)); err == nil {
		t.Fatalf("expected error for mistyped JSON, got nil")
	}
}

func TestParseIntoPreservesDefaults(t *testing.T) {
	type cfg struct {
		Prefix string `json:"prefix"`
		WPM    int    `json:"wpm"`
	}

	c := cfg{Prefix: "/blog", WPM: 200}
	if err := ParseInto([]byte(`{"wpm": 250}`), &c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.Prefix != "/blog" {
		t.Fatalf("expected untouched field to keep its default, got %q", c.Prefix)
	}
	if c.WPM != 250 {
		t.Fatalf("expected overridden field, got %d", c.WPM)
	}

	if err := ParseInto([]byte(`{`), &c); err == nil {
		t.Fatalf("expected error for truncated JSON, got nil")
	}
}
