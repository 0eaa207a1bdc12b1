package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{name: "empty_uses_default", raw: "", want: time.Minute},
		{name: "go_duration", raw: "90s", want: 90 * time.Second},
		{name: "bare_seconds", raw: "30", want: 30 * time.Second},
		{name: "garbage_uses_default", raw: "soon", want: time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tc.raw)
			if got := Duration("TEST_DURATION", time.Minute); got != tc.want {
				t.Fatalf("Duration(%q)=%v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestListAndBool(t *testing.T) {
	t.Setenv("TEST_LIST", " a, ,b ,")
	got := List("TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List=%v, want [a b]", got)
	}

	t.Setenv("TEST_BOOL", "off")
	if Bool("TEST_BOOL", true) {
		t.Fatalf("Bool(off) should be false")
	}
	t.Setenv("TEST_BOOL", "maybe")
	if !Bool("TEST_BOOL", true) {
		t.Fatalf("Bool(maybe) should fall back to default")
	}
}
