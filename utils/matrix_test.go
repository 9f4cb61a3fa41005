package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, A.RawMatrix().Data, []float64{1, 4, 2, 5, 3, 6})
	}
	// SliceCols
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		I := NewIndex(2)
		I[0] = 1
		I[1] = 0
		A := M.SliceCols(I)
		assert.Equal(t, A, NewMatrix(2, 2, []float64{
			2, 1,
			5, 4,
		}))
	}
	// SliceBlock
	{
		M := NewMatrix(3, 3, []float64{
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		})
		A := M.SliceBlock(0, 2, 1, 3)
		assert.Equal(t, A, NewMatrix(2, 2, []float64{
			2, 3,
			5, 6,
		}))
	}
	// ScaleCols
	{
		M := NewMatrix(2, 2, []float64{
			1, 2,
			3, 4,
		})
		M.ScaleCols([]float64{2, 0.5})
		assert.Equal(t, M, NewMatrix(2, 2, []float64{
			2, 1,
			6, 2,
		}))
	}
}

func TestMatrixInverse(t *testing.T) {
	M := NewMatrix(2, 2, []float64{
		4, 7,
		2, 6,
	})
	MInv, err := M.Inverse()
	assert.NoError(t, err)
	P := M.Mul(MInv)
	assert.True(t, near(P.At(0, 0), 1))
	assert.True(t, near(P.At(1, 1), 1))
	assert.True(t, nearZero(P.At(0, 1)))
	assert.True(t, nearZero(P.At(1, 0)))

	S := NewMatrix(2, 2, []float64{
		1, 2,
		2, 4,
	})
	_, err = S.Inverse()
	assert.Error(t, err)
}

func TestConditionNumber(t *testing.T) {
	I := NewIdentity(3)
	assert.True(t, near(I.ConditionNumber(), 1))

	D := NewDiagMatrix([]float64{100, 1, 0.01})
	assert.True(t, near(D.ConditionNumber(), 1.e4))
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(b)+1.e-12 {
		l = true
	}
	return
}

func nearZero(a float64) (l bool) {
	return math.Abs(a) < 1.e-10
}
