package core

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{
			name:   "emote prefix",
			prefix: "em",
		},
		{
			name:   "command prefix",
			prefix: "cmd",
		},
		{
			name:   "uppercase prefix gets lowercased",
			prefix: "EM",
		},
		{
			name:   "prefix with spaces gets trimmed",
			prefix: "  cmd  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewID(tt.prefix)

			// Check the format: prefix_ULID
			expectedPrefix := strings.ToLower(strings.TrimSpace(tt.prefix)) + "_"
			if !strings.HasPrefix(got, expectedPrefix) {
				t.Errorf("NewID() = %v, want prefix %v", got, expectedPrefix)
			}

			// Check ULID pattern: 26 characters, base32 encoded
			ulidPart := strings.TrimPrefix(got, expectedPrefix)
			if len(ulidPart) != 26 {
				t.Errorf("NewID() ULID part length = %v, want 26", len(ulidPart))
			}

			// Check ULID format using regex (base32 characters: 0-9, A-Z excluding I, L, O, U)
			ulidPattern := regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)
			if !ulidPattern.MatchString(ulidPart) {
				t.Errorf("NewID() ULID part %v does not match expected pattern", ulidPart)
			}
		})
	}
}

func TestNewIDPanic(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{
			name:   "empty prefix panics",
			prefix: "",
		},
		{
			name:   "whitespace-only prefix panics",
			prefix: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("NewID(%q) did not panic", tt.prefix)
				}
			}()
			NewID(tt.prefix)
		})
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{
			name: "valid emote ID",
			id:   NewID("em"),
			want: true,
		},
		{
			name: "valid command ID",
			id:   NewID("cmd"),
			want: true,
		},
		{
			name: "empty string",
			id:   "",
			want: false,
		},
		{
			name: "missing prefix",
			id:   "01G0EZ1XTM37C5X11SQTDNCTM1",
			want: false,
		},
		{
			name: "uppercase prefix",
			id:   "EM_01G0EZ1XTM37C5X11SQTDNCTM1",
			want: false,
		},
		{
			name: "ULID part too short",
			id:   "em_01G0EZ1XTM37C5X11SQTDNCT",
			want: false,
		},
		{
			name: "multiple underscores",
			id:   "em_extra_01G0EZ1XTM37C5X11SQTDNCTM1",
			want: false,
		},
		{
			name: "invalid ULID characters",
			id:   "em_01G0EZ1XTM37C5X11SQTDNCTIL",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidID(tt.id); got != tt.want {
				t.Errorf("IsValidID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		fn   func(error) bool
		want bool
	}{
		{"not found sentinel", ErrNotFound, IsNotFoundError, true},
		{"disabled sentinel", ErrDisabled, IsDisabledError, true},
		{"disabled is not not-found", ErrDisabled, IsNotFoundError, false},
		{"validation error", NewValidationError("trigger", "cannot be empty"), IsValidationError, true},
		{"duplicate error", &DuplicateInScopeError{Value: "brb", Scope: "globally"}, IsDuplicateInScopeError, true},
		{"validation is not duplicate", NewValidationError("author", "cannot be empty"), IsDuplicateInScopeError, false},
		{"nil error", nil, IsNotFoundError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v for %v", got, tt.want, tt.err)
			}
		})
	}
}
