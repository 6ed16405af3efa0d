package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	err := Validationf("thiếu tiêu đề")
	if !errors.Is(err, ErrValidation) {
		t.Error("validation error does not match ErrValidation")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("validation error matches ErrConflict")
	}

	wrapped := fmt.Errorf("handler: %w", NotFoundf("bài viết %q", "x"))
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapped not-found error does not match ErrNotFound")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Conflictf("slug đã tồn tại")); got != "slug đã tồn tại" {
		t.Errorf("Message = %q", got)
	}

	// Errors outside the taxonomy yield no caller-facing message.
	if got := Message(errors.New("mongo: connection reset")); got != "" {
		t.Errorf("Message leaked internals: %q", got)
	}
}
