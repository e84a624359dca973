package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		places int32
		want   float64
	}{
		{"two places", 12.3456, 2, 12.35},
		{"four places", 1.034567, 4, 1.0346},
		{"negative", -3.14159, 2, -3.14},
		{"binary value below half", 2.675, 2, 2.67},
		{"exact tie to even down", 3.125, 2, 3.12},
		{"exact tie to even small", 0.625, 2, 0.62},
		{"exact tie to even up", 0.375, 2, 0.38},
		{"negative tie", -0.125, 2, -0.12},
		{"integer tie even", 2.5, 0, 2},
		{"integer tie odd", 3.5, 0, 4},
		{"rsl places", 1.00005, 4, 1.0001},
		{"already exact", 100, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.v, tt.places))
		})
	}
}
