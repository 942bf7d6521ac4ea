package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		v, m float64
		want float64
	}{
		{"inside", 10, 100, 10},
		{"past the end", 250, 100, 50},
		{"negative", -30, 100, 70},
		{"exact multiple", 200, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, wrap(tt.v, tt.m), 1e-9)
		})
	}
}

func TestShakeOffset(t *testing.T) {
	assert.Zero(t, shakeOffset(0))
	assert.Zero(t, shakeOffset(-3))

	for range 100 {
		off := shakeOffset(16)
		assert.GreaterOrEqual(t, off.X, -8.0)
		assert.Less(t, off.X, 8.0)
		assert.GreaterOrEqual(t, off.Y, -8.0)
		assert.Less(t, off.Y, 8.0)
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, abs(-5))
	assert.Equal(t, 5, abs(5))
	assert.Equal(t, 0, abs(0))
}
