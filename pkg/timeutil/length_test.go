package timeutil

import "testing"

func TestParseLengthComposite(t *testing.T) {
	days, label, err := ParseLength("1w3d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 10 {
		t.Fatalf("expected 10 days, got %d", days)
	}
	if label != "1w3d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseLengthCanonical(t *testing.T) {
	_, label, err := ParseLength("14 days")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "2w" {
		t.Fatalf("expected 2w, got %s", label)
	}
}

func TestParseLengthInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "3h", "0d"} {
		if _, _, err := ParseLength(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestEndAfterIsInclusive(t *testing.T) {
	start := date(2023, 11, 1)
	if got := EndAfter(start, 5); !got.Equal(date(2023, 11, 5)) {
		t.Fatalf("EndAfter() = %s", FormatDate(got))
	}
	if got := EndAfter(start, 0); !got.Equal(start) {
		t.Fatalf("EndAfter(0) = %s", FormatDate(got))
	}
}
