package utils

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCMatrixInverse(t *testing.T) {
	M := NewCMatrix(2, 2, []complex128{
		complex(1, 1), complex(2, 0),
		complex(0, -1), complex(1, 0),
	})
	MInv, err := M.Inverse()
	assert.NoError(t, err)
	P := M.Mul(MInv)
	assert.True(t, cmplx.Abs(P.At(0, 0)-1) < 1.e-12)
	assert.True(t, cmplx.Abs(P.At(1, 1)-1) < 1.e-12)
	assert.True(t, cmplx.Abs(P.At(0, 1)) < 1.e-12)
	assert.True(t, cmplx.Abs(P.At(1, 0)) < 1.e-12)
}

func TestCMatrixMul(t *testing.T) {
	// non-square product with hand-computed entries
	M := NewCMatrix(2, 3, []complex128{
		1, complex(0, 1), 2,
		complex(0, -1), 1, 0,
	})
	A := NewCMatrix(3, 2, []complex128{
		1, 0,
		complex(0, 1), 1,
		0, complex(1, 1),
	})
	P := M.Mul(A)
	nr, nc := P.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, nc)
	assert.True(t, cmplx.Abs(P.At(0, 0)-0) < 1.e-15)          // 1 + i*i + 0
	assert.True(t, cmplx.Abs(P.At(0, 1)-complex(2, 3)) < 1.e-15) // i + 2(1+i)
	assert.True(t, cmplx.Abs(P.At(1, 0)-complex(0, 0)) < 1.e-15) // -i + i
	assert.True(t, cmplx.Abs(P.At(1, 1)-1) < 1.e-15)

	assert.Panics(t, func() { M.Mul(M) })
}

func TestCMatrixMulVec(t *testing.T) {
	M := NewCMatrix(2, 2, []complex128{
		1, complex(0, 1),
		complex(0, -1), 1,
	})
	y := M.MulVec([]complex128{1, 1})
	assert.True(t, cmplx.Abs(y[0]-complex(1, 1)) < 1.e-15)
	assert.True(t, cmplx.Abs(y[1]-complex(1, -1)) < 1.e-15)
}

func TestCMatrixRealRoundTrip(t *testing.T) {
	A := NewMatrix(2, 2, []float64{
		0.9, 0,
		0, 0.8,
	})
	C := NewCMatrixFromReal(A)
	assert.True(t, C.IsReal(1.e-15))
	assert.Equal(t, A, C.Real())
	assert.True(t, near(C.ConditionNumber(), 0.9/0.8))
}
