package utils

import "testing"

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1000, "1.0 kB"},
		{12_000_000, "12 MB"},
	}
	for _, tt := range tests {
		if got := HumanBytes(tt.in); got != tt.want {
			t.Errorf("HumanBytes(%d): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestHumanInteger(t *testing.T) {
	if got := HumanInteger(1234567); got != "1,234,567" {
		t.Fatalf("expected 1,234,567, got %s", got)
	}
}
