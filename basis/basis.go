package basis

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/notargets/romfit/utils"
)

// Basis is a multivariate polynomial feature map over a k-dimensional
// state. Terms run from total degree 1 up to Order in graded order, so the
// first Dim terms are the linear monomials and the first Dim columns of
// any coefficient matrix over this basis form the linear part of the map.
// There is no constant term: the origin is a fixed point of every map
// fitted over this basis.
type Basis struct {
	Dim, Order int
	NTerms     int
	Exp        *sparse.CSR // NTerms x Dim exponent table
	index      map[string]int
}

func New(dim, order int) (b *Basis) {
	if dim < 1 || order < 1 {
		err := fmt.Errorf("invalid basis request: dim = %v, order = %v", dim, order)
		panic(err)
	}
	var table [][]int
	for d := 1; d <= order; d++ {
		table = appendDegree(table, nil, dim, d)
	}
	return fromTable(dim, order, table)
}

// NewFromExponents builds a basis from a caller-supplied exponent table,
// one row per term. The order is taken as the highest total degree the
// table encodes.
func NewFromExponents(table [][]int) (b *Basis, err error) {
	if len(table) == 0 {
		err = fmt.Errorf("empty exponent table")
		return
	}
	var (
		dim   = len(table[0])
		order int
	)
	for _, e := range table {
		if len(e) != dim {
			err = fmt.Errorf("ragged exponent table: row lengths %v and %v", dim, len(e))
			return
		}
		var deg int
		for _, p := range e {
			if p < 0 {
				err = fmt.Errorf("negative exponent %v in table", p)
				return
			}
			deg += p
		}
		if deg > order {
			order = deg
		}
	}
	b = fromTable(dim, order, table)
	return
}

func fromTable(dim, order int, table [][]int) (b *Basis) {
	dok := sparse.NewDOK(len(table), dim)
	index := make(map[string]int, len(table))
	for i, e := range table {
		for j, p := range e {
			if p != 0 {
				dok.Set(i, j, float64(p))
			}
		}
		index[key(e)] = i
	}
	b = &Basis{
		Dim:    dim,
		Order:  order,
		NTerms: len(table),
		Exp:    dok.ToCSR(),
		index:  index,
	}
	return
}

// appendDegree extends table with all multi-indices of total degree d over
// dim variables, leading exponent largest first so x1 precedes x2 etc.
func appendDegree(table [][]int, prefix []int, dim, d int) [][]int {
	if dim == 1 {
		e := make([]int, len(prefix)+1)
		copy(e, prefix)
		e[len(prefix)] = d
		return append(table, e)
	}
	for p := d; p >= 0; p-- {
		table = appendDegree(table, append(prefix, p), dim-1, d-p)
	}
	return table
}

func key(e []int) string {
	return fmt.Sprint(e)
}

func (b *Basis) ExponentRow(i int) (e []int) {
	e = make([]int, b.Dim)
	for j := 0; j < b.Dim; j++ {
		e[j] = int(b.Exp.At(i, j))
	}
	return
}

// Exponents returns a dense copy of the exponent table for model metadata.
func (b *Basis) Exponents() (E utils.Matrix) {
	E = utils.NewMatrix(b.NTerms, b.Dim)
	for i := 0; i < b.NTerms; i++ {
		for j := 0; j < b.Dim; j++ {
			E.Set(i, j, b.Exp.At(i, j))
		}
	}
	return
}

// MaxTotalDegree scans the table rather than trusting Order, since custom
// tables may encode less than their nominal truncation.
func (b *Basis) MaxTotalDegree() (deg int) {
	for i := 0; i < b.NTerms; i++ {
		var d int
		for j := 0; j < b.Dim; j++ {
			d += int(b.Exp.At(i, j))
		}
		if d > deg {
			deg = d
		}
	}
	return
}

func (b *Basis) TermIndex(e []int) (i int, ok bool) {
	i, ok = b.index[key(e)]
	return
}

// Evaluate applies the feature map to a batch of states held in the
// columns of X (Dim x N), returning Phi (NTerms x N).
func (b *Basis) Evaluate(X utils.Matrix) (Phi utils.Matrix) {
	var (
		nr, N = X.Dims()
	)
	if nr != b.Dim {
		err := fmt.Errorf("state dimension mismatch: basis dim = %v, X rows = %v", b.Dim, nr)
		panic(err)
	}
	Phi = utils.NewMatrix(b.NTerms, N)
	for i := 0; i < b.NTerms; i++ {
		e := b.ExponentRow(i)
		for j := 0; j < N; j++ {
			val := 1.
			for d, p := range e {
				if p != 0 {
					val *= utils.POW(X.At(d, j), p)
				}
			}
			Phi.Set(i, j, val)
		}
	}
	return
}

// EvaluateVecC evaluates the feature map at a single complex state.
func (b *Basis) EvaluateVecC(x []complex128) (phi []complex128) {
	if len(x) != b.Dim {
		err := fmt.Errorf("state dimension mismatch: basis dim = %v, len(x) = %v", b.Dim, len(x))
		panic(err)
	}
	phi = make([]complex128, b.NTerms)
	for i := 0; i < b.NTerms; i++ {
		e := b.ExponentRow(i)
		val := complex(1, 0)
		for d, p := range e {
			if p != 0 {
				val *= utils.CPOW(x[d], p)
			}
		}
		phi[i] = val
	}
	return
}
