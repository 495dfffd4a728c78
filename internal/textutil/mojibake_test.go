package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairMojibake_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			// UTF-8 bytes for é (0xC3 0xA9) decoded as Latin-1.
			name:     "single pass accent",
			input:    "CafÃ© Row",
			expected: "Café Row",
		},
		{
			// UTF-8 bytes for U+2011 decoded as Latin-1, repaired by the
			// round trip and then mapped to ASCII by the table.
			name:     "corrupted non-breaking hyphen",
			input:    "US\u00c3\u00a2\u00c2\u0080\u00c2\u009119",
			expected: "US-19",
		},
		{
			name:     "corrupted apostrophe",
			input:    "Lee\u00c3\u00a2\u00c2\u0080\u00c2\u0099s Crossing",
			expected: "Lee's Crossing",
		},
		{
			name:     "plain ascii unchanged",
			input:    "123 Main St",
			expected: "123 Main St",
		},
		{
			name:     "whitespace collapsed",
			input:    "123   Main \t St",
			expected: "123 Main St",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepairMojibake(tt.input))
		})
	}
}

func TestRepairMojibake_BestEffort(t *testing.T) {
	// Contains a rune outside Latin-1, so the round trip cannot apply; the
	// text passes through with only whitespace collapsed.
	in := "Tenant 世界 Yard"
	assert.Equal(t, in, RepairMojibake(in))
}

func TestRepairMojibake_RealPunctuation(t *testing.T) {
	assert.Equal(t, "US-19", RepairMojibake("US‑19"))
	assert.Equal(t, "1-5", RepairMojibake("1–5"))
	assert.Equal(t, "A-B", RepairMojibake("A—B"))
	assert.Equal(t, "Lee's", RepairMojibake("Lee’s"))
}
