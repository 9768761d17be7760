package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain ten digits",
			input: "9876543210",
			want:  "9876543210",
		},
		{
			name:  "with country code",
			input: "+91 98765 43210",
			want:  "9876543210",
		},
		{
			name:  "with trunk prefix",
			input: "098765-43210",
			want:  "9876543210",
		},
		{
			name:  "leading and trailing spaces",
			input: "  9876543210  ",
			want:  "9876543210",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "too short keeps digits",
			input: "98765",
			want:  "98765",
		},
		{
			name:  "foreign number keeps digits",
			input: "+1 (212) 555-1234",
			want:  "12125551234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+91 98765 43210", "98765", "", "abc"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Errorf("NormalizePhone not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
