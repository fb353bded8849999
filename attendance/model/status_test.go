package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"P", StatusPresent, true},
		{"p", StatusPresent, true},
		{" Present ", StatusPresent, true},
		{"A", StatusAbsent, true},
		{"absent", StatusAbsent, true},
		{"L", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusOrDefault(t *testing.T) {
	assert.Equal(t, StatusPresent, StatusOrDefault("PRESENT"))
	assert.Equal(t, StatusAbsent, StatusOrDefault("leave"))
	assert.Equal(t, StatusAbsent, StatusOrDefault(""))
}

func TestStatusMark(t *testing.T) {
	assert.Equal(t, "P", StatusPresent.Mark())
	assert.Equal(t, "A", StatusAbsent.Mark())
	assert.Equal(t, "", StatusNone.Mark())
	assert.False(t, StatusNone.Stored())
}
