package dynamics

import (
	"fmt"

	"github.com/notargets/romfit/spectral"
	"github.com/notargets/romfit/utils"
)

// buildTransforms derives the coordinate change and conjugate dynamics for
// the selected style. The style is fixed for the life of a fit; there is
// no runtime switching.
//
// default:    T = iT = identity, N aliases R.
// modal:      iT(x) = Vinv*x, T(y) = V*y with V the sorted eigenvector
//             matrix; N(y) = Vinv*R(V*y), whose coefficients are
//             Vinv * W_R * B(V) with B the induced action of V on the
//             polynomial basis.
// normalform: declared but not implemented.
func buildTransforms(style Style, R *PolynomialMap, dec *spectral.Decomposition, maxCond float64) (iT, T, N *PolynomialMap, err error) {
	var (
		k = R.Dim()
	)
	switch style {
	case StyleDefault:
		iT = NewIdentityMap(k)
		T = NewIdentityMap(k)
		N = R
	case StyleModal:
		if cond := dec.V.ConditionNumber(); cond > maxCond {
			err = fmt.Errorf("%w: eigenvector matrix condition number %.3e exceeds limit %.3e", ErrNumerical, cond, maxCond)
			return
		}
		var Vinv utils.CMatrix
		if Vinv, err = dec.V.Inverse(); err != nil {
			err = fmt.Errorf("%w: eigenvector matrix is singular: %v", ErrNumerical, err)
			return
		}
		T = NewLinearMap(dec.V)
		iT = NewLinearMap(Vinv)
		var B utils.CMatrix
		if B, err = R.Basis.InducedTransform(dec.V); err != nil {
			err = fmt.Errorf("%w: basis change propagation: %v", ErrNumerical, err)
			return
		}
		N = newMap(Vinv.Mul(R.W.Mul(B)), R.Basis)
	case StyleNormalForm:
		err = fmt.Errorf("%w: normal-form coordinate change is not implemented", ErrNotImplemented)
	default:
		err = fmt.Errorf("%w: unrecognized coordinate-transform style %q", ErrConfiguration, style)
	}
	return
}
