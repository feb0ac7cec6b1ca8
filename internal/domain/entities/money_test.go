package entities

import "testing"

func TestFormatCLP(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1.000",
		1234567:  "1.234.567",
		-4500000: "-4.500.000",
	}
	for v, want := range cases {
		if got := FormatCLP(v); got != want {
			t.Fatalf("FormatCLP(%d): expected %q, got %q", v, want, got)
		}
	}
}
