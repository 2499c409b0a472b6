package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 20, 20},
		{"42", 0, 42},
		{"-3", 1, -3},
		{"007", 99, 7},
		{"abc", 5, 5},
		{" 42", 7, 7}, // no trimming: spaces mean a bad value
		{"99999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d, want %d", tc.s, tc.def, got, tc.want)
		}
	}
}
