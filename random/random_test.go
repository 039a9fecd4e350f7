package random

import (
	"regexp"
	"testing"
)

func TestString(t *testing.T) {
	s := String(16)
	if len(s) != 16 {
		t.Fatalf("expected 16 chars, got %d", len(s))
	}
}

func TestHex(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{4}$`)
	for i := 0; i < 50; i++ {
		if s := Hex(4); !re.MatchString(s) {
			t.Fatalf("Hex(4) produced %q", s)
		}
	}
}

func TestStringSecure(t *testing.T) {
	s, err := StringSecure(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 32 {
		t.Fatalf("expected 32 chars, got %d", len(s))
	}
}
