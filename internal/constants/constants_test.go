package constants

import "testing"

func TestParseTaskStatus(t *testing.T) {
	cases := map[string]bool{
		"pending":     true,
		"in_progress": true,
		"completed":   true,
		"Pending":     false,
		"done":        false,
		"":            false,
	}

	for in, want := range cases {
		got, ok := ParseTaskStatus(in)
		if ok != want {
			t.Errorf("ParseTaskStatus(%q) ok = %v, want %v", in, ok, want)
		}
		if ok && string(got) != in {
			t.Errorf("ParseTaskStatus(%q) = %q", in, got)
		}
	}
}

func TestParseTaskPriority(t *testing.T) {
	for _, p := range TaskPriorities {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}

	if _, ok := ParseTaskPriority("urgent"); ok {
		t.Error("expected urgent to be rejected")
	}
	if TaskPriority("HIGH").Valid() {
		t.Error("priority parsing must be case sensitive")
	}
}
