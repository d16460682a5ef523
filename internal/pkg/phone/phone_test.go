package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading one gets plus", "15551234567", "+15551234567"},
		{"leading one with punctuation", "1 (555) 123-4567", "+15551234567"},
		{"leading zero dropped", "0712345678", "+712345678"},
		{"plain digits get plus", "712345678", "+712345678"},
		{"already international", "+447912345678", "+447912345678"},
		{"international with zero digits", "+0712345678", "+712345678"},
		{"spaces and dashes stripped", "44 79-12 345 678", "+447912345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"15551234567",
		"0712345678",
		"712345678",
		"+447912345678",
		"1 (555) 123-4567",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
