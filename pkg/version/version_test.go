package version

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "1", "abc", "1.0.0", "1.x", "-1.0", ".1"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrInvalidVersion) {
				t.Errorf("Parse(%q) = %v, want ErrInvalidVersion", input, err)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		peer string
		want bool
	}{
		{"1.0", true},
		{"1.7", true},
		{"2.0", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := Compatible(tt.peer); got != tt.want {
			t.Errorf("Compatible(%q) = %v, want %v", tt.peer, got, tt.want)
		}
	}
}

func TestCurrentParses(t *testing.T) {
	if _, err := Parse(Current); err != nil {
		t.Fatalf("Current %q does not parse: %v", Current, err)
	}
}

func TestString(t *testing.T) {
	if got := String(); !strings.Contains(got, "api "+Current) || !strings.HasPrefix(got, Build) {
		t.Errorf("String() = %q", got)
	}
}
