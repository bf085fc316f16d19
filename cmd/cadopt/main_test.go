package main

import "testing"

func TestClampGrid(t *testing.T) {
	cases := []struct{ in, want int }{
		{10, 32}, {32, 32}, {500, 500}, {1024, 1024}, {2000, 1024},
	}
	for _, c := range cases {
		if got := clampGrid(c.in); got != c.want {
			t.Errorf("clampGrid(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}
