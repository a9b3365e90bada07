package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	v := []float32{0.3, 0.4, 0.5}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
}

func TestCosine_OppositeVectors(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	assert.InDelta(t, -1.0, Cosine(a, b), 1e-6)
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	assert.InDelta(t, 0.0, Cosine(a, b), 1e-6)
}

func TestCosine_MagnitudeIndependent(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{10, 10}
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-6)
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}))
}

func TestCosine_MismatchedOrEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestCosine_AlwaysWithinBounds(t *testing.T) {
	vectors := [][]float32{
		{0.0001, -0.9999, 0.5},
		{123.4, -567.8, 910.1},
		{1e-8, 1e-8, 1e-8},
		{-1, -1, -1},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			score := Cosine(a, b)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.False(t, math.IsNaN(score))
		}
	}
}
