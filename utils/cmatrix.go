package utils

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// CMatrix is the complex companion to Matrix. Eigenvector bases of a real
// linear map are complex in general, so the coordinate-change stages work
// in complex arithmetic throughout.
type CMatrix struct {
	M *mat.CDense
}

func NewCMatrix(nr, nc int, dataO ...[]complex128) (R CMatrix) {
	var m *mat.CDense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewCMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewCDense(nr, nc, dataO[0])
	} else {
		m = mat.NewCDense(nr, nc, make([]complex128, nr*nc))
	}
	R = CMatrix{m}
	return
}

func NewCMatrixFromReal(A Matrix) (R CMatrix) {
	var (
		nr, nc = A.Dims()
	)
	R = NewCMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, complex(A.At(i, j), 0))
		}
	}
	return
}

func NewCIdentity(n int) (R CMatrix) {
	R = NewCMatrix(n, n)
	for i := 0; i < n; i++ {
		R.M.Set(i, i, 1)
	}
	return
}

func NewCDiagMatrix(d []complex128) (R CMatrix) {
	R = NewCMatrix(len(d), len(d))
	for i, val := range d {
		R.M.Set(i, i, val)
	}
	return
}

func (m CMatrix) Dims() (r, c int)            { return m.M.Dims() }
func (m CMatrix) At(i, j int) complex128      { return m.M.At(i, j) }
func (m CMatrix) IsEmpty() bool               { return m.M == nil }
func (m CMatrix) Set(i, j int, val complex128) CMatrix {
	m.M.Set(i, j, val)
	return m
}

func (m CMatrix) Copy() (R CMatrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewCMatrix(nr, nc)
	R.M.Copy(m.M)
	return
}

func (m CMatrix) Mul(A CMatrix) (R CMatrix) { // Does not change receiver
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if ncM != nrA {
		err := fmt.Errorf("dimension mismatch: ncM = %v, nrA = %v", ncM, nrA)
		panic(err)
	}
	R = NewCMatrix(nrM, ncA)
	for i := 0; i < nrM; i++ {
		for j := 0; j < ncA; j++ {
			var sum complex128
			for l := 0; l < ncM; l++ {
				sum += m.M.At(i, l) * A.M.At(l, j)
			}
			R.M.Set(i, j, sum)
		}
	}
	return
}

func (m CMatrix) Scale(a complex128) CMatrix { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			m.M.Set(i, j, a*m.M.At(i, j))
		}
	}
	return m
}

func (m CMatrix) MulVec(x []complex128) (y []complex128) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		err := fmt.Errorf("dimension mismatch: nc = %v, len(x) = %v", nc, len(x))
		panic(err)
	}
	y = make([]complex128, nr)
	for i := 0; i < nr; i++ {
		var sum complex128
		for j := 0; j < nc; j++ {
			sum += m.M.At(i, j) * x[j]
		}
		y[i] = sum
	}
	return
}

// realEmbedding maps M = A + iB to the real 2n x 2n block matrix
// [[A, -B], [B, A]], which shares its invertibility and conditioning with M.
func (m CMatrix) realEmbedding() (E Matrix) {
	var (
		nr, nc = m.Dims()
	)
	E = NewMatrix(2*nr, 2*nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			v := m.M.At(i, j)
			re, im := real(v), imag(v)
			E.M.Set(i, j, re)
			E.M.Set(i, j+nc, -im)
			E.M.Set(i+nr, j, im)
			E.M.Set(i+nr, j+nc, re)
		}
	}
	return
}

func (m CMatrix) Inverse() (R CMatrix, err error) {
	var (
		nr, nc = m.Dims()
		EInv   Matrix
	)
	if nr != nc {
		err = fmt.Errorf("cannot invert non-square matrix: nr, nc = %v, %v", nr, nc)
		return
	}
	if EInv, err = m.realEmbedding().Inverse(); err != nil {
		return
	}
	R = NewCMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, complex(EInv.At(i, j), EInv.At(i+nr, j)))
		}
	}
	return
}

func (m CMatrix) ConditionNumber() (cond float64) {
	return m.realEmbedding().ConditionNumber()
}

// IsReal reports whether every entry has imaginary part below tol.
func (m CMatrix) IsReal(tol float64) bool {
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if math.Abs(imag(m.M.At(i, j))) > tol {
				return false
			}
		}
	}
	return true
}

// Real drops the imaginary parts. Callers should gate on IsReal.
func (m CMatrix) Real() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(i, j, real(m.M.At(i, j)))
		}
	}
	return
}

func (m CMatrix) MaxAbsDiff(A CMatrix) (max float64) {
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if d := cmplx.Abs(m.M.At(i, j) - A.M.At(i, j)); d > max {
				max = d
			}
		}
	}
	return
}

func (m CMatrix) String() (s string) {
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			s += fmt.Sprintf(" %v", m.M.At(i, j))
		}
		s += "\n"
	}
	return
}
