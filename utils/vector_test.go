package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	{
		v := NewVector(3, []float64{1, 2, 3})
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 6., v.Sum())
		assert.Equal(t, 1., v.Min())
		assert.Equal(t, 3., v.Max())
	}
	{ // Chained operations change the receiver, Copy does not share storage
		v := NewVector(3, []float64{1, 2, 3})
		c := v.Copy()
		v.Add(1).POW(2)
		assert.Equal(t, []float64{4, 9, 16}, v.Data())
		assert.Equal(t, []float64{1, 2, 3}, c.Data())
		v.Sub(NewVector(3, []float64{4, 9, 16}))
		assert.Equal(t, []float64{0, 0, 0}, v.Data())
		c.Apply(func(x float64) float64 { return -x })
		assert.Equal(t, []float64{-1, -2, -3}, c.Data())
	}
	{
		assert.Panics(t, func() { NewVector(2, []float64{1}) })
	}
}
