package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoupleStudy(t *testing.T) {
	cs, err := RunCoupleStudy(3, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 40}, cs.numCells)
	assert.Equal(t, []float64{1, 0.5, 0.25}, cs.dx)
	assert.Equal(t, []float64{4, 2, 1}, cs.dt)
	assert.InDeltaSlice(t, []float64{5.838119e-3, 1.307374e-3, 3.312808e-4}, cs.rmsErr, 1.e-9)
	assert.InDeltaSlice(t, []float64{9.844189e-3, 2.561690e-3, 6.562932e-4}, cs.maxErr, 1.e-9)
	order := cs.Order()
	assert.True(t, math.IsNaN(order[0]))
	assert.InDelta(t, 2.159, order[1], 1.e-3)
	assert.InDelta(t, 1.981, order[2], 1.e-3)
	{ // CSV round trip
		var buf bytes.Buffer
		require.NoError(t, writeCSV(&buf, cs))
		studies, err := readCSV(&buf)
		require.NoError(t, err)
		require.Contains(t, studies, cs.title)
		assert.Equal(t, cs, studies[cs.title])
	}
	{ // Study file round trip
		path := filepath.Join(t.TempDir(), "couple.csv")
		require.NoError(t, writeStudy(path, cs))
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		studies, err := readCSV(f)
		require.NoError(t, err)
		assert.Equal(t, cs, studies[cs.title])
		assert.Error(t, writeStudy(filepath.Join(t.TempDir(), "missing", "couple.csv"), cs))
	}
	{
		_, err := readCSV(strings.NewReader("title,cells\nplanar,ten\n"))
		assert.Error(t, err)
		_, err = readCSV(strings.NewReader("title,cells,dx,dt,rmsErr,maxErr,massErr\nplanar,10,1,4,x,0,0\n"))
		assert.Error(t, err)
	}
}
