package basis

import (
	"fmt"

	"github.com/notargets/romfit/utils"
)

// InducedTransform returns the matrix B with phi(V y) = B phi(y): the
// order-preserving linear action of a change of state basis V on the
// polynomial coefficients. A map R(x) = W phi(x) conjugated by V therefore
// has coefficients Vinv * W * B in the new coordinates.
//
// Each term phi_i(V y) = prod_d (sum_l V[d][l] y_l)^(e_id) is expanded by
// repeated multiplication with the linear forms; every resulting monomial
// has the same total degree as the source term, so the expansion always
// lands inside the table.
func (b *Basis) InducedTransform(V utils.CMatrix) (B utils.CMatrix, err error) {
	var (
		nr, nc = V.Dims()
	)
	if nr != b.Dim || nc != b.Dim {
		err = fmt.Errorf("change of basis must be %v x %v, got %v x %v", b.Dim, b.Dim, nr, nc)
		return
	}
	B = utils.NewCMatrix(b.NTerms, b.NTerms)
	for i := 0; i < b.NTerms; i++ {
		e := b.ExponentRow(i)
		poly := map[string]*monomial{
			key(make([]int, b.Dim)): {e: make([]int, b.Dim), c: 1},
		}
		for d, p := range e {
			for rep := 0; rep < p; rep++ {
				poly = mulLinearForm(poly, V, d, b.Dim)
			}
		}
		for _, mono := range poly {
			j, ok := b.TermIndex(mono.e)
			if !ok {
				err = fmt.Errorf("expanded monomial %v missing from exponent table", mono.e)
				return
			}
			B.Set(i, j, B.At(i, j)+mono.c)
		}
	}
	return
}

type monomial struct {
	e []int
	c complex128
}

// mulLinearForm multiplies every monomial in poly by the linear form
// sum_l V[d][l] y_l.
func mulLinearForm(poly map[string]*monomial, V utils.CMatrix, d, dim int) (out map[string]*monomial) {
	out = make(map[string]*monomial, len(poly)*dim)
	for _, mono := range poly {
		for l := 0; l < dim; l++ {
			v := V.At(d, l)
			if v == 0 {
				continue
			}
			e := make([]int, dim)
			copy(e, mono.e)
			e[l]++
			k := key(e)
			if m, ok := out[k]; ok {
				m.c += mono.c * v
			} else {
				out[k] = &monomial{e: e, c: mono.c * v}
			}
		}
	}
	return
}
