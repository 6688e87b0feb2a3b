package content

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseFrontmatterWellFormed(t *testing.T) {
	fm, body, err := ParseFrontmatter([]byte(goodPost))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Title != "Monadic Comprehension Syntax" {
		t.Fatalf("unexpected title %q", fm.Title)
	}
	if fm.Date != "2020-11-25" {
		t.Fatalf("unexpected date %q", fm.Date)
	}
	if want := []string{"fsharp", "functional-programming"}; !reflect.DeepEqual(fm.Tags, want) {
		t.Fatalf("unexpected tags %v", fm.Tags)
	}
	if body != "Some **body** text long enough to read.\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontmatterIsIdempotent(t *testing.T) {
	fm1, body1, err1 := ParseFrontmatter([]byte(goodPost))
	fm2, body2, err2 := ParseFrontmatter([]byte(goodPost))
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(fm1, fm2) || body1 != body2 {
		t.Fatal("expected identical output across repeated invocations")
	}
}

func TestParseFrontmatterMissingDate(t *testing.T) {
	_, _, err := ParseFrontmatter([]byte("---\ntitle: 'No Date'\n---\nbody\n"))
	if !errors.Is(err, ErrMalformedFrontmatter) {
		t.Fatalf("expected ErrMalformedFrontmatter, got %v", err)
	}
}

func TestParseFrontmatterMissingTitle(t *testing.T) {
	_, _, err := ParseFrontmatter([]byte("---\ndate: '2020-01-01'\n---\nbody\n"))
	if !errors.Is(err, ErrMalformedFrontmatter) {
		t.Fatalf("expected ErrMalformedFrontmatter, got %v", err)
	}
}

func TestParseFrontmatterUnterminatedBlock(t *testing.T) {
	_, _, err := ParseFrontmatter([]byte("---\ntitle: 'Unterminated'\ndate: '2020-01-01'\nbody without closing marker\n"))
	if !errors.Is(err, ErrMalformedFrontmatter) {
		t.Fatalf("expected ErrMalformedFrontmatter, got %v", err)
	}
}

func TestParseFrontmatterInvalidDate(t *testing.T) {
	_, _, err := ParseFrontmatter([]byte("---\ntitle: 'Bad Date'\ndate: 'christmas'\n---\nbody\n"))
	if !errors.Is(err, ErrMalformedFrontmatter) {
		t.Fatalf("expected ErrMalformedFrontmatter, got %v", err)
	}
}

func TestParseFrontmatterPreservesUnknownKeys(t *testing.T) {
	raw := []byte("---\ntitle: 'T'\ndate: '2020-01-01'\nseries: 'compilers'\n---\nbody\n")
	fm, _, err := ParseFrontmatter(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm.Extra["series"] != "compilers" {
		t.Fatalf("expected unknown key preserved, got %v", fm.Extra)
	}
}
