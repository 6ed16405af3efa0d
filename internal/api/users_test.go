package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestChangePasswordRequestValidation(t *testing.T) {
	v := validator.New()

	// Admin resets omit the current password.
	if err := v.Struct(changePasswordRequest{NewPassword: "secret1"}); err != nil {
		t.Errorf("reset without current password rejected: %v", err)
	}

	if err := v.Struct(changePasswordRequest{CurrentPassword: "old", NewPassword: ""}); err == nil {
		t.Error("missing new password accepted")
	}
	if err := v.Struct(changePasswordRequest{NewPassword: "short"}); err == nil {
		t.Error("five-character new password accepted")
	}
}
