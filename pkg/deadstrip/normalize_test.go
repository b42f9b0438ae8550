package deadstrip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbolRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"cdecl underscore", "_foo", "foo"},
		{"fastcall", "@bar@8", "bar"},
		{"grouping prefix", ".text$baz", "baz"},
		{"stdcall suffix", "qux@12", "qux"},
		{"surrounding whitespace", "  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSymbol(tt.input))
		})
	}
}

func TestStripGroupingPrefix(t *testing.T) {
	stripped, ok := StripGroupingPrefix(".rdata$table")
	assert.True(t, ok)
	assert.Equal(t, "table", stripped)

	stripped, ok = StripGroupingPrefix(".bss")
	assert.False(t, ok)
	assert.Equal(t, ".bss", stripped)
}

func TestIsWeakSection(t *testing.T) {
	assert.True(t, isWeakSection(".rdata"))
	assert.False(t, isWeakSection(".rdata$foo"))
	assert.False(t, isWeakSection(".text"))
}
