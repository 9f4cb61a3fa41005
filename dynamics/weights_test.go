package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/romfit/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformWeights(t *testing.T) {
	tv := utils.NewVector(4, []float64{0, 1, 2, 3})
	w, err := ComputeWeights(tv, 0, 0)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 1., w.AtVec(i))
	}
}

func TestDecayingWeights(t *testing.T) {
	tv := utils.NewVector(3, []float64{0, 1, 10})
	w, err := ComputeWeights(tv, 4, 0.5)
	require.NoError(t, err)
	// w(0) = (1+4)^-2
	assert.True(t, near(w.AtVec(0), 1./25))
	// Monotone increasing toward 1 as the transient decays
	assert.True(t, w.AtVec(0) < w.AtVec(1))
	assert.True(t, w.AtVec(1) < w.AtVec(2))
	assert.True(t, w.AtVec(2) < 1)
	for i := 0; i < 3; i++ {
		assert.True(t, w.AtVec(i) > 0)
	}
}

func TestWeightsReject(t *testing.T) {
	tv := utils.NewVector(2, []float64{0, 1})

	_, err := ComputeWeights(tv, -1, 0)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = ComputeWeights(tv, 0, math.Inf(1))
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = ComputeWeights(tv, math.NaN(), 0)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
