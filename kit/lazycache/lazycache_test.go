package lazycache

import (
	"errors"
	"testing"
)

func TestGetRunsOnce(t *testing.T) {
	var v Value[int]
	calls := 0
	init := func() int { calls++; return 42 }

	for range 5 {
		if got := Get(&v, init); got != 42 {
			t.Fatalf("expected 42, got %d", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single init, got %d", calls)
	}
}

func TestGetErrMemoizesError(t *testing.T) {
	var v Value[string]
	calls := 0
	wantErr := errors.New("boom")
	init := func() (string, error) { calls++; return "", wantErr }

	for range 3 {
		if _, err := GetErr(&v, init); !errors.Is(err, wantErr) {
			t.Fatalf("expected memoized error, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single init, got %d", calls)
	}
}
