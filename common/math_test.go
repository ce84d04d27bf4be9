package common

import "testing"

func TestSign(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.5, 1},
		{-0.01, -1},
		{0, 0},
	}
	for _, tc := range tests {
		if got := Sign(tc.in); got != tc.want {
			t.Fatalf("Sign(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("expected clamp to 3, got %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Fatalf("expected 12.5, got %v", got)
	}
}
