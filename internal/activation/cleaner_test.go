package activation

import (
	"strings"
	"testing"
)

func TestFixLeadingDigits(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"4412345 1234567", "1112345 1234567"},
		{"44", "11"},
		{"4", "4"},
		{"1412345", "1412345"},
		{"4142345", "4142345"},
		{"", ""},
		{"1234567 4412345", "1234567 4412345"},
	}
	for _, c := range cases {
		if got := FixLeadingDigits(c.in); got != c.want {
			t.Errorf("FixLeadingDigits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanDropsSpuriousLeadingCharacter(t *testing.T) {
	got := Clean("91234567 1234567 81234567")
	if got != "1234567 1234567 1234567" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestCleanPreservesTokens(t *testing.T) {
	in := "1 22 1234567  \n 12345678\t123456789 Ж1234567"
	got := strings.Fields(Clean(in))
	want := []string{"1", "22", "1234567", "2345678", "23456789", "1234567"}
	if len(got) != len(want) {
		t.Fatalf("token count changed: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCleanSingleSpaces(t *testing.T) {
	if got := Clean("  1234567\n\n7654321  "); got != "1234567 7654321" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Clean(" \n "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestResult(t *testing.T) {
	r := NotFound()
	if code, ok := r.Code(); ok || code != "" {
		t.Fatalf("NotFound returned a code %q", code)
	}
	if r.String() != NotFoundMessage {
		t.Fatalf("unexpected message %q", r.String())
	}
	if (Result{}).IsFound() {
		t.Fatal("zero Result must be NotFound")
	}

	f := Found("1234567")
	if code, ok := f.Code(); !ok || code != "1234567" || f.String() != "1234567" {
		t.Fatalf("unexpected found result %+v", f)
	}

	// A code that happens to equal the message is still a code.
	odd := Found(NotFoundMessage)
	if !odd.IsFound() {
		t.Fatal("Found result reported as not found")
	}
}
