package MCDiffusion1D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/diffchron/types"
)

func TestProfile(t *testing.T) {
	gr, err := NewGrid(0, 10, 1, 5, types.Planar)
	require.NoError(t, err)
	{ // Flat profile splits at the interface
		f, err := FlatProfile(gr, []float64{0.2, 0.8}, []float64{0.8, 0.2})
		require.NoError(t, err)
		assert.Equal(t, 2, f.Species())
		assert.Equal(t, 10, f.Cells())
		assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.8, 0.8, 0.8, 0.8, 0.8}, f.Profile(0))
		assert.Equal(t, 0., f.SumDeviation())
		assert.Equal(t, 0, f.OutOfBounds(0))
	}
	{ // Compositions must sum to one
		_, err := FlatProfile(gr, []float64{0.2, 0.7}, []float64{0.8, 0.2})
		var ie *InputValidationError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, "composition.left", ie.Field)
		_, err = FlatProfile(gr, []float64{0.2, 0.8}, []float64{0.8, 0.1, 0.1})
		assert.True(t, errors.Is(err, ErrInputValidation))
		_, err = FlatProfile(gr, []float64{1}, []float64{1})
		assert.True(t, errors.Is(err, ErrInputValidation))
		_, err = FlatProfile(gr, []float64{1.2, -0.2}, []float64{0.5, 0.5})
		assert.True(t, errors.Is(err, ErrInputValidation))
	}
	{ // Interpolated profile, linear ramp is reproduced exactly at the centers
		f, err := InterpolatedProfile(gr, []float64{0, 10}, [][]float64{{0, 1}, {1, 0}})
		require.NoError(t, err)
		for i, x := range gr.Centers {
			assert.InDelta(t, x/10, f.Profile(0)[i], 1.e-15)
			assert.InDelta(t, 1-x/10, f.Profile(1)[i], 1.e-15)
		}
		assert.Less(t, f.SumDeviation(), 1.e-15)
	}
	{ // Breakpoints inside the domain hold the end values outside
		f, err := InterpolatedProfile(gr, []float64{4, 6}, [][]float64{{0.2, 0.3, 0.5}, {0.6, 0.3, 0.1}})
		require.NoError(t, err)
		assert.InDelta(t, 0.2, f.Profile(0)[0], 1.e-15)
		assert.InDelta(t, 0.6, f.Profile(0)[9], 1.e-15)
		// Cell 4 spans [4,5]: walls 0.2 and 0.4
		assert.InDelta(t, 0.3, f.Profile(0)[4], 1.e-15)
		assert.InDelta(t, 0.3, f.Profile(1)[4], 1.e-15)
	}
	{ // Malformed breakpoints
		_, err := InterpolatedProfile(gr, []float64{1}, [][]float64{{0.5, 0.5}})
		assert.True(t, errors.Is(err, ErrInputValidation))
		_, err = InterpolatedProfile(gr, []float64{2, 1}, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
		assert.True(t, errors.Is(err, ErrInputValidation))
		_, err = InterpolatedProfile(gr, []float64{1, 2}, [][]float64{{0.5, 0.5}})
		assert.True(t, errors.Is(err, ErrInputValidation))
	}
}

func TestCloseDependent(t *testing.T) {
	f := NewField(3, 2)
	copy(f.Profile(0), []float64{0.1, 0.5})
	copy(f.Profile(1), []float64{0.2, 0.5})
	copy(f.Profile(2), []float64{7, 7})
	CloseDependent(f)
	assert.InDelta(t, 0.7, f.Profile(2)[0], 1.e-15)
	assert.Equal(t, 0., f.Profile(2)[1])
	rows := f.Rows()
	rows[0][0] = 42
	assert.Equal(t, 0.1, f.Profile(0)[0])
}
