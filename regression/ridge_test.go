package regression

import (
	"math"
	"testing"

	"github.com/notargets/romfit/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Noiseless linear data is recovered exactly with lambda = 0.
func TestExactRecovery(t *testing.T) {
	var (
		n = 20
		A = utils.NewMatrix(2, 2, []float64{
			0.9, 0.1,
			-0.2, 0.8,
		})
	)
	Phi := utils.NewMatrix(2, n)
	for j := 0; j < n; j++ {
		Phi.Set(0, j, math.Sin(float64(j)+1))
		Phi.Set(1, j, math.Cos(2*float64(j)+0.3))
	}
	Y := A.Mul(Phi)

	res, err := Ridge(Phi, Y, Options{Lambdas: []float64{0}})
	require.NoError(t, err)
	assert.Equal(t, 0., res.Lambda)
	assert.Equal(t, 0., res.CVError)
	assert.True(t, res.W.MaxAbsDiff(A) < 1.e-10)
}

// The penalty shrinks coefficients monotonically toward zero.
func TestShrinkage(t *testing.T) {
	var (
		n = 10
	)
	Phi := utils.NewMatrix(1, n)
	Y := utils.NewMatrix(1, n)
	for j := 0; j < n; j++ {
		x := float64(j + 1)
		Phi.Set(0, j, x)
		Y.Set(0, j, 2*x)
	}
	var prev = math.Inf(1)
	for _, lambda := range []float64{0, 1, 10, 100} {
		res, err := Ridge(Phi, Y, Options{Lambdas: []float64{lambda}})
		require.NoError(t, err)
		c := res.W.At(0, 0)
		assert.True(t, c <= prev+1.e-12)
		assert.True(t, c > 0)
		prev = c
	}
}

// Cross-validation over clean data selects the smallest candidate.
func TestLambdaSelection(t *testing.T) {
	var (
		n = 24
	)
	Phi := utils.NewMatrix(2, n)
	for j := 0; j < n; j++ {
		Phi.Set(0, j, math.Sin(0.7*float64(j)+0.1))
		Phi.Set(1, j, math.Cos(1.3*float64(j)))
	}
	A := utils.NewMatrix(2, 2, []float64{
		0.5, 0,
		0.1, -0.4,
	})
	Y := A.Mul(Phi)

	folds := []utils.Index{
		utils.NewRange(0, 7),
		utils.NewRange(8, 15),
		utils.NewRange(16, 23),
	}
	res, err := Ridge(Phi, Y, Options{
		Lambdas: []float64{1.e-12, 1.e-2, 1},
		Folds:   folds,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.e-12, res.Lambda)
	assert.Equal(t, 3, len(res.CVErrors))
	assert.True(t, res.CVError <= res.CVErrors[1])
	assert.True(t, res.CVErrors[1] <= res.CVErrors[2])
}

// Zero-weighted samples cannot influence the fit.
func TestWeightedFit(t *testing.T) {
	var (
		n = 8
	)
	Phi := utils.NewMatrix(1, n)
	Y := utils.NewMatrix(1, n)
	w := make([]float64, n)
	for j := 0; j < n; j++ {
		x := float64(j + 1)
		Phi.Set(0, j, x)
		if j < 4 {
			// Clean samples, full weight
			Y.Set(0, j, 3*x)
			w[j] = 1
		} else {
			// Corrupted samples, zero weight
			Y.Set(0, j, -10*x)
			w[j] = 0
		}
	}
	res, err := Ridge(Phi, Y, Options{
		Lambdas: []float64{0},
		Weights: utils.NewVector(n, w),
	})
	require.NoError(t, err)
	assert.True(t, math.Abs(res.W.At(0, 0)-3) < 1.e-10)
}

func TestRidgeRejects(t *testing.T) {
	Phi := utils.NewMatrix(1, 4, []float64{1, 2, 3, 4})
	Y := utils.NewMatrix(1, 4, []float64{1, 2, 3, 4})

	_, err := Ridge(Phi, Y, Options{})
	assert.Error(t, err)

	// Candidate sweep without folds is ill-posed
	_, err = Ridge(Phi, Y, Options{Lambdas: []float64{0, 1}})
	assert.Error(t, err)

	_, err = Ridge(Phi, Y, Options{Lambdas: []float64{-1}})
	assert.Error(t, err)

	_, err = Ridge(Phi, Y, Options{Lambdas: []float64{0}, Weights: utils.NewVector(2, []float64{1, 1})})
	assert.Error(t, err)
}
