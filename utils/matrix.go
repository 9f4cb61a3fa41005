package utils

import (
	"fmt"

	"gonum.org/v1/gonum/lapack/lapack64"

	"gonum.org/v1/gonum/blas/blas64"

	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

func NewIdentity(n int) (R Matrix) {
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.M.Set(i, i, 1)
	}
	return
}

func NewDiagMatrix(d []float64) (R Matrix) {
	R = NewMatrix(len(d), len(d))
	for i, val := range d {
		R.M.Set(i, i, val)
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.M.RawMatrix().Data }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		data   = m.M.RawMatrix().Data
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
	)
	R = NewMatrix(nc, nr)
	dataR := R.M.RawMatrix().Data
	for j := 0; j < nc; j++ {
		for i := 0; i < nr; i++ {
			ind := i + nr*j
			indR := i*nc + j
			dataR[ind] = data[indR]
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return R
}

func (m Matrix) MulVec(v Vector) (R Vector) { // Does not change receiver
	var (
		nr, _ = m.Dims()
	)
	R = NewVector(nr)
	R.V.MulVec(m.M, v.V)
	return
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetCol(j int, data []float64) Matrix { // Changes receiver
	m.M.SetCol(j, data)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	var (
		dataM = m.RawMatrix().Data
		dataA = A.RawMatrix().Data
	)
	for i, val := range dataA {
		dataM[i] += val
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	var (
		dataM = m.RawMatrix().Data
		dataA = A.RawMatrix().Data
	)
	for i, val := range dataA {
		dataM[i] -= val
	}
	return m
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.M.RawMatrix().Data
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix { // Changes receiver
	var (
		data = m.M.RawMatrix().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

// ScaleCols scales column j of the receiver by d[j], the fast path for
// applying a diagonal weight matrix on the right.
func (m Matrix) ScaleCols(d []float64) Matrix { // Changes receiver
	var (
		nr, nc = m.Dims()
		data   = m.RawMatrix().Data
	)
	if len(d) != nc {
		err := fmt.Errorf("dimension mismatch: nc = %v, len(d) = %v", nc, len(d))
		panic(err)
	}
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			data[i*nc+j] *= d[j]
		}
	}
	return m
}

// SliceBlock extracts the submatrix [I:K) x [J:L).
func (m Matrix) SliceBlock(I, K, J, L int) (R Matrix) { // Does not change receiver
	var (
		nrR = K - I
		ncR = L - J
	)
	R = NewMatrix(nrR, ncR)
	for i := I; i < K; i++ {
		for j := J; j < L; j++ {
			R.M.Set(i-I, j-J, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) SliceCols(I Index) (R Matrix) { // Does not change receiver
	// I should contain a list of column indices into M
	var (
		nr, nc   = m.Dims()
		maxIndex = nc - 1
		nI       = len(I)
		colData  = make([]float64, nr)
	)
	R = NewMatrix(nr, nI)
	for jNewCol, j := range I {
		if j > maxIndex || j < 0 {
			err := fmt.Errorf("index out of bounds: index = %d, max_bounds = %d", j, maxIndex)
			panic(err)
		}
		for i := 0; i < nr; i++ {
			colData[i] = m.M.At(i, j)
		}
		R.M.SetCol(jNewCol, colData)
	}
	return
}

func (m Matrix) Col(j int) (V Vector) {
	var (
		nr, _ = m.Dims()
		vData = make([]float64, nr)
	)
	for i := range vData {
		vData[i] = m.M.At(i, j)
	}
	return NewVector(nr, vData)
}

func (m Matrix) Row(i int) (V Vector) {
	var (
		_, nc = m.Dims()
		vData = make([]float64, nc)
	)
	for j := range vData {
		vData[j] = m.M.At(i, j)
	}
	return NewVector(nc, vData)
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("cannot invert non-square matrix: nr, nc = %v, %v", nr, nc)
		return
	}
	R = m.Copy()
	iPiv := make([]int, nr)
	if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
		return
	}
	work := make([]float64, nr*nc)
	if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
		err = fmt.Errorf("unable to invert, matrix is singular")
	}
	return
}

func (m Matrix) ConditionNumber() (cond float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDThin) {
		return 1.e16
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[len(values)-1] < 1.e-16 {
		return 1.e16
	}
	cond = values[0] / values[len(values)-1]
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.M.RawMatrix().Data
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) MaxAbsDiff(A Matrix) (max float64) {
	var (
		dataM = m.RawMatrix().Data
		dataA = A.RawMatrix().Data
	)
	for i, val := range dataM {
		d := val - dataA[i]
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return
}

func (m Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.M, mat.Squeeze()))
}
