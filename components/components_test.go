package components

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Kind
		wantErr bool
	}{
		{"rock", "rock", Rock, false},
		{"stone alias", "stone", Rock, false},
		{"paper", "paper", Paper, false},
		{"scissors", "scissors", Scissors, false},
		{"unknown", "lizard", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
}

func TestSyncBox(t *testing.T) {
	b := Body{Radius: 21.6, HalfW: 24, HalfH: 24, Box: Box{W: 48, H: 48}}

	b.SyncBox(Position{X: 100, Y: 60})
	if b.Box.X != 76 || b.Box.Y != 36 {
		t.Errorf("Box origin = (%d, %d), want (76, 36)", b.Box.X, b.Box.Y)
	}
	if b.Box.W != 48 || b.Box.H != 48 {
		t.Errorf("Box size = (%d, %d), want (48, 48)", b.Box.W, b.Box.H)
	}

	b.SyncBox(Position{X: 100.9, Y: 60.2})
	if b.Box.X != 76 || b.Box.Y != 36 {
		t.Errorf("fractional center: Box origin = (%d, %d), want (76, 36)", b.Box.X, b.Box.Y)
	}
}
