package sanitizer

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Murugan Travels  ",
			want:  "Murugan Travels",
		},
		{
			name:  "multiple spaces between words",
			input: "Palani    via   Dindigul",
			want:  "Palani via Dindigul",
		},
		{
			name:  "tabs and newlines",
			input: "Kodai\t\nkanal",
			want:  "Kodai kanal",
		},
		{
			name:  "control characters removed",
			input: "Madu\x00rai",
			want:  "Madurai",
		},
		{
			name:  "tamil script preserved",
			input: " மதுரை ",
			want:  "மதுரை",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeText(tt.want); again != tt.want {
				t.Errorf("not idempotent: %q -> %q", tt.want, again)
			}
		})
	}
}

func TestNormalizePickupTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9:00 PM", "9:00 PM"},
		{"9pm", "9:00 PM"},
		{"09:00 pm", "9:00 PM"},
		{"12:00 a.m.", "12:00 AM"},
		{"  10:30PM ", "10:30 PM"},
		{"midnight", "midnight"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePickupTime(tt.input); got != tt.want {
			t.Errorf("NormalizePickupTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{1500, 1500},
		{1500.456, 1500.46},
		{-0.001, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAmount(tt.input); got != tt.want {
			t.Errorf("NormalizeAmount(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
