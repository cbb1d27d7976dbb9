package apperr

import (
	"errors"
	"io"
	"testing"
)

var errTemplate = &Error{Message: "%s duration must be positive"}

func TestFmtAndWrap(t *testing.T) {
	err := errTemplate.Fmt("loop").Wrap(io.EOF)

	if got, want := err.Error(), "loop duration must be positive: EOF"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if !errors.Is(err, errTemplate) {
		t.Error("expected derived error to match its template")
	}

	if !errors.Is(err, io.EOF) {
		t.Error("expected wrapped cause to be reachable")
	}

	other := &Error{Message: "%s duration must be positive"}
	if errors.Is(err, other) {
		t.Error("distinct templates with equal text must not match")
	}
}
