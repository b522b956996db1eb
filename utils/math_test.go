package utils

import "testing"

func TestRoundFloat(t *testing.T) {
	cases := []struct {
		val  float64
		prec int
		want float64
	}{
		{1.005, 2, 1.0},   // float64 representation of 1.005 sits just below
		{1.2349, 2, 1.23},
		{1.236, 2, 1.24},
		{-0.125, 2, -0.13},
		{10, 2, 10},
	}
	for _, c := range cases {
		if got := RoundFloat(c.val, c.prec); got != c.want {
			t.Errorf("RoundFloat(%v, %d) = %v, want %v", c.val, c.prec, got, c.want)
		}
	}
}

func TestGenerateOrderIDShape(t *testing.T) {
	id := GenerateOrderID(42)
	if len(id) < 14 {
		t.Fatalf("order id too short: %q", id)
	}
	if id[:4] != "TVN-" {
		t.Fatalf("order id prefix wrong: %q", id)
	}
}
