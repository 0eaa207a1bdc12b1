package observability

import (
	"context"
	"errors"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	cases := []struct {
		raw  string
		want map[string]string
	}{
		{raw: "", want: nil},
		{raw: "a=1", want: map[string]string{"a": "1"}},
		{raw: " a = 1 , b=2,broken,=x,c=", want: map[string]string{"a": "1", "b": "2"}},
		{raw: "x=a=b", want: map[string]string{"x": "a=b"}},
	}
	for _, tc := range cases {
		got := ParseHeaders(tc.raw)
		if len(got) != len(tc.want) {
			t.Fatalf("ParseHeaders(%q)=%v, want %v", tc.raw, got, tc.want)
		}
		for k, v := range tc.want {
			if got[k] != v {
				t.Fatalf("ParseHeaders(%q)[%q]=%q, want %q", tc.raw, k, got[k], v)
			}
		}
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v, want %v", in, got, want)
		}
	}
}

func TestStartSpanWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	if ctx == nil || span == nil {
		t.Fatalf("expected a usable no-op span")
	}
	EndSpan(span, errors.New("boom"))
}
