package ui

import "testing"

func TestStartScreenPerKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int
		want     int
	}{
		{"empty uses fallback", "", 1, 1},
		{"empty uses seeded fallback", "", 25, 25},
		{"typed count", "12", 1, 12},
		{"max digits", "999", 1, 999},
		{"zero falls back", "0", 1, 1},
		{"leading zeros", "007", 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStartScreen(tt.fallback, 1000, 700)
			s.input = tt.input
			if got := s.PerKind(); got != tt.want {
				t.Errorf("PerKind() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartScreenReset(t *testing.T) {
	s := NewStartScreen(5, 1000, 700)
	s.input = "42"
	s.Reset()
	if got := s.PerKind(); got != 5 {
		t.Errorf("PerKind() after Reset = %d, want fallback 5", got)
	}
}
