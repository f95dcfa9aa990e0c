package validate

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	cases := map[string]bool{
		"1990-04-12": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"12/04/1990": false,
		"":           false,
		"1990-4-12":  false,
	}
	for in, want := range cases {
		if got := Date(in); got != want {
			t.Errorf("Date(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTimestamp(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	for _, in := range []string{"2024-05-01T10:30:00Z", "2024-05-01T10:30", "2024-05-01 10:30:00"} {
		got, err := Timestamp(in)
		if err != nil {
			t.Fatalf("Timestamp(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("Timestamp(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := Timestamp("tomorrow"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestAnyBlank(t *testing.T) {
	if !AnyBlank("a", " ", "c") {
		t.Error("expected blank detected")
	}
	if AnyBlank("a", "b") {
		t.Error("expected no blanks")
	}
}

func TestBlankPtr(t *testing.T) {
	empty, full := "  ", "x"
	if BlankPtr(nil) {
		t.Error("nil pointer is not blank")
	}
	if !BlankPtr(&empty) {
		t.Error("expected blank")
	}
	if BlankPtr(&full) {
		t.Error("expected not blank")
	}
}

func TestOneOf(t *testing.T) {
	if !OneOf("Completed", "Scheduled", "Completed") {
		t.Error("expected match")
	}
	if OneOf("Done", "Scheduled", "Completed") {
		t.Error("expected no match")
	}
}
