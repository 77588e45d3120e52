package types

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"length", "length"},
		{"Numéro d'identification", "Numerodidentification"},
		{"serial_number", "serial_number"},
		{"Größe", "Groe"},
		{"ID 2", "ID2"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeName(tt.in); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeyCaseInsensitive(t *testing.T) {
	if normalizeKey("Longueur Totale") != normalizeKey("longueurtotale") {
		t.Error("normalizeKey should be case-insensitive and drop spaces")
	}
}
