package dynamics

import (
	"fmt"
	"math"

	"github.com/notargets/romfit/utils"
)

// ComputeWeights evaluates w(t) = (1 + c1*exp(-c2*t))^(-2) over the sample
// instants. Early samples of a trajectory sit farther from the asymptotic
// slow manifold, so larger c1 or c2 discounts them harder; c1 = c2 = 0
// gives uniform unit weights.
func ComputeWeights(t utils.Vector, c1, c2 float64) (w utils.Vector, err error) {
	if c1 < 0 || c2 < 0 || !isFinite(c1) || !isFinite(c2) {
		err = fmt.Errorf("%w: weighting coefficients must be finite and non-negative, got c1 = %v, c2 = %v", ErrConfiguration, c1, c2)
		return
	}
	w = utils.NewVector(t.Len())
	var (
		tD = t.Data()
		wD = w.Data()
	)
	for i, ti := range tD {
		den := 1 + c1*math.Exp(-c2*ti)
		wD[i] = 1 / (den * den)
		if !isFinite(wD[i]) || wD[i] <= 0 {
			err = fmt.Errorf("%w: weight for sample %d (t = %v) is %v, must be finite and positive", ErrConfiguration, i, ti, wD[i])
			return
		}
	}
	return
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
