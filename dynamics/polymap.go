package dynamics

import (
	"fmt"

	"github.com/notargets/romfit/basis"
	"github.com/notargets/romfit/utils"
)

// PolynomialMap is a polynomial state update x -> W*phi(x). Coefficients
// live in complex arithmetic so the one type serves the identity and
// fitted maps as well as the modal transforms, whose eigenvector bases
// are complex in general. Immutable once constructed.
type PolynomialMap struct {
	W       utils.CMatrix
	Basis   *basis.Basis
	Order   int
	Lambda  float64
	CVError float64
	Fitted  bool // Lambda and CVError are meaningful only for fitted maps
}

// newMap is the single assembly path every map goes through: the order is
// always re-derived from the exponent table, not taken on faith.
func newMap(W utils.CMatrix, b *basis.Basis) (p *PolynomialMap) {
	var (
		_, nc = W.Dims()
	)
	if nc != b.NTerms {
		err := fmt.Errorf("coefficient/basis mismatch: %v columns for %v terms", nc, b.NTerms)
		panic(err)
	}
	p = &PolynomialMap{
		W:     W,
		Basis: b,
		Order: b.MaxTotalDegree(),
	}
	return
}

// NewFittedMap packages a regression result over b.
func NewFittedMap(W utils.Matrix, b *basis.Basis, lambda, cvError float64) (p *PolynomialMap) {
	p = newMap(utils.NewCMatrixFromReal(W), b)
	p.Lambda = lambda
	p.CVError = cvError
	p.Fitted = true
	return
}

// NewLinearMap wraps a k x k matrix as an order-1 polynomial map.
func NewLinearMap(A utils.CMatrix) (p *PolynomialMap) {
	var (
		k, _ = A.Dims()
	)
	return newMap(A, basis.New(k, 1))
}

// NewIdentityMap is the order-1 identity on k coordinates.
func NewIdentityMap(k int) (p *PolynomialMap) {
	return NewLinearMap(utils.NewCIdentity(k))
}

func (p *PolynomialMap) Dim() int { return p.Basis.Dim }

// Evaluate applies the map to one state.
func (p *PolynomialMap) Evaluate(x []complex128) (y []complex128) {
	return p.W.MulVec(p.Basis.EvaluateVecC(x))
}

// EvaluateReal applies the map to a real state, discarding roundoff-level
// imaginary parts. Only meaningful for maps with real coefficients.
func (p *PolynomialMap) EvaluateReal(x []float64) (y []float64) {
	xc := make([]complex128, len(x))
	for i, v := range x {
		xc[i] = complex(v, 0)
	}
	yc := p.Evaluate(xc)
	y = make([]float64, len(yc))
	for i, v := range yc {
		y[i] = real(v)
	}
	return
}

// EvaluateBatch maps every column of X (dim x N).
func (p *PolynomialMap) EvaluateBatch(X utils.Matrix) (Y utils.Matrix) {
	var (
		k, n = X.Dims()
	)
	Y = utils.NewMatrix(p.outDim(), n)
	x := make([]float64, k)
	for j := 0; j < n; j++ {
		for i := 0; i < k; i++ {
			x[i] = X.At(i, j)
		}
		for i, v := range p.EvaluateReal(x) {
			Y.Set(i, j, v)
		}
	}
	return
}

func (p *PolynomialMap) outDim() (k int) {
	k, _ = p.W.Dims()
	return
}

func (p *PolynomialMap) Coefficients() utils.CMatrix { return p.W }

// RealCoefficients returns the coefficient matrix as real when all
// imaginary parts are at roundoff level.
func (p *PolynomialMap) RealCoefficients() (W utils.Matrix, ok bool) {
	if !p.W.IsReal(1.e-10) {
		return
	}
	return p.W.Real(), true
}

// LinearPart is the k x k coefficient block over the linear monomials,
// looked up through the exponent table so custom tables that do not lead
// with the linear terms still resolve correctly. A linear monomial absent
// from the table contributes a zero column.
func (p *PolynomialMap) LinearPart() (A utils.CMatrix) {
	var (
		k = p.outDim()
		d = p.Basis.Dim
	)
	A = utils.NewCMatrix(k, d)
	for j := 0; j < d; j++ {
		e := make([]int, d)
		e[j] = 1
		col, ok := p.Basis.TermIndex(e)
		if !ok {
			continue
		}
		for i := 0; i < k; i++ {
			A.Set(i, j, p.W.At(i, col))
		}
	}
	return
}
