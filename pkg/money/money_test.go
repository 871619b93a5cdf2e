package money

import "testing"

func TestRoundToNearestTenCents(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact multiple", 30.0, 30.0},
		{"rounds down", 1.24, 1.2},
		{"rounds up", 1.26, 1.3},
		{"half rounds away from zero", 1.25, 1.3},
		{"risk example", 125.0 / 100, 1.3},
		{"zero", 0, 0},
		{"small value", 0.04, 0},
		{"small value up", 0.05, 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RoundToNearestTenCents(tc.in)
			if got != tc.want {
				t.Errorf("RoundToNearestTenCents(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRoundToNearestTenCentsIdempotent(t *testing.T) {
	inputs := []float64{0, 0.04, 0.05, 1.23, 1.25, 99.99, 1234.567, 3.0000001}
	for _, v := range inputs {
		once := RoundToNearestTenCents(v)
		twice := RoundToNearestTenCents(once)
		if once != twice {
			t.Errorf("rounding not idempotent for %v: first %v, second %v", v, once, twice)
		}
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{30, "R$ 30,00"},
		{1.3, "R$ 1,30"},
		{1234.56, "R$ 1.234,56"},
		{-5, "R$ -5,00"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.in); got != tc.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
