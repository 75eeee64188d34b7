package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid input", ErrInvalidInput},
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"unauthorized", ErrUnauthorized},
		{"forbidden", ErrForbidden},
		{"unsupported image", ErrUnsupportedImage},
		{"image too large", ErrImageTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match sentinel: %v", tc.err)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	all := []error{ErrInvalidInput, ErrAlreadyExists, ErrNotFound, ErrInvalidCredentials, ErrUnauthorized, ErrForbidden, ErrUnsupportedImage, ErrImageTooLarge}
	for i, a := range all {
		for j, b := range all {
			if i != j && stdErrors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
	}
}
