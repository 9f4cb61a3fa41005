package basis

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/notargets/romfit/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentTable(t *testing.T) {
	b := New(2, 2)
	assert.Equal(t, 5, b.NTerms)
	// Linear terms first, then graded order
	assert.Equal(t, []int{1, 0}, b.ExponentRow(0))
	assert.Equal(t, []int{0, 1}, b.ExponentRow(1))
	assert.Equal(t, []int{2, 0}, b.ExponentRow(2))
	assert.Equal(t, []int{1, 1}, b.ExponentRow(3))
	assert.Equal(t, []int{0, 2}, b.ExponentRow(4))
	assert.Equal(t, 2, b.MaxTotalDegree())

	i, ok := b.TermIndex([]int{1, 1})
	require.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = b.TermIndex([]int{3, 0})
	assert.False(t, ok)
}

func TestTermCount(t *testing.T) {
	// NTerms = C(dim+order, order) - 1
	assert.Equal(t, 2, New(1, 2).NTerms)
	assert.Equal(t, 9, New(2, 3).NTerms)
	assert.Equal(t, 19, New(3, 3).NTerms)
}

func TestEvaluate(t *testing.T) {
	b := New(2, 2)
	X := utils.NewMatrix(2, 2, []float64{
		2, -1,
		3, 0.5,
	})
	Phi := b.Evaluate(X)
	nr, nc := Phi.Dims()
	assert.Equal(t, 5, nr)
	assert.Equal(t, 2, nc)
	// Column 0 is the state (2, 3)
	assert.Equal(t, 2., Phi.At(0, 0))
	assert.Equal(t, 3., Phi.At(1, 0))
	assert.Equal(t, 4., Phi.At(2, 0))
	assert.Equal(t, 6., Phi.At(3, 0))
	assert.Equal(t, 9., Phi.At(4, 0))
	// Column 1 is the state (-1, 0.5)
	assert.Equal(t, -1., Phi.At(0, 1))
	assert.Equal(t, -0.5, Phi.At(3, 1))
}

func TestNewFromExponents(t *testing.T) {
	b, err := NewFromExponents([][]int{
		{1, 0},
		{0, 1},
		{3, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, b.NTerms)
	assert.Equal(t, 3, b.MaxTotalDegree())

	_, err = NewFromExponents([][]int{{1, 0}, {1}})
	assert.Error(t, err)
}

func TestInducedTransform(t *testing.T) {
	// phi(V y) must equal B phi(y) at arbitrary points
	b := New(2, 3)
	V := utils.NewCMatrix(2, 2, []complex128{
		complex(0.7, 0.2), complex(-0.3, 0),
		complex(0.1, -0.5), complex(1.1, 0.4),
	})
	B, err := b.InducedTransform(V)
	require.NoError(t, err)

	y := []complex128{complex(0.4, -0.2), complex(-0.9, 0.1)}
	x := V.MulVec(y)
	lhs := b.EvaluateVecC(x)
	rhs := make([]complex128, b.NTerms)
	phiY := b.EvaluateVecC(y)
	for i := 0; i < b.NTerms; i++ {
		var sum complex128
		for j := 0; j < b.NTerms; j++ {
			sum += B.At(i, j) * phiY[j]
		}
		rhs[i] = sum
	}
	for i := range lhs {
		assert.True(t, cmplx.Abs(lhs[i]-rhs[i]) < 1.e-12, "term %d: %v vs %v", i, lhs[i], rhs[i])
	}
}

func TestInducedTransformIdentity(t *testing.T) {
	b := New(3, 2)
	B, err := b.InducedTransform(utils.NewCIdentity(3))
	require.NoError(t, err)
	for i := 0; i < b.NTerms; i++ {
		for j := 0; j < b.NTerms; j++ {
			want := 0.
			if i == j {
				want = 1
			}
			assert.True(t, math.Abs(real(B.At(i, j))-want) < 1.e-14)
			assert.True(t, math.Abs(imag(B.At(i, j))) < 1.e-14)
		}
	}
}
