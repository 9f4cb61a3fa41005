package dynamics

import (
	"fmt"

	"github.com/notargets/romfit/utils"
)

// Model is the identified reduced-order model. All four maps are always
// present so consumers see one contract regardless of style: in default
// style the transforms are identities and ConjugateDynamics aliases
// ReducedDynamics. Created once by Fit, never mutated.
type Model struct {
	ReducedDynamics       *PolynomialMap // R
	InverseTransformation *PolynomialMap // iT
	ConjugateDynamics     *PolynomialMap // N
	Transformation        *PolynomialMap // T

	Style        Style
	DynamicsType string // always "map"
	Dt           float64

	DiscreteEigs   []complex128
	ContinuousEigs []complex128
	Eigenvectors   utils.CMatrix
}

// Predict rolls the reduced dynamics forward from x0, returning the
// k x (nSteps+1) state history including x0.
func (m *Model) Predict(x0 []float64, nSteps int) (X utils.Matrix) {
	var (
		k = len(x0)
	)
	X = utils.NewMatrix(k, nSteps+1)
	x := make([]float64, k)
	copy(x, x0)
	for i, v := range x {
		X.Set(i, 0, v)
	}
	for step := 1; step <= nSteps; step++ {
		x = m.ReducedDynamics.EvaluateReal(x)
		for i, v := range x {
			X.Set(i, step, v)
		}
	}
	return
}

func (m *Model) Print() {
	fmt.Printf("[%s]\t\t\t= Style\n", m.Style)
	fmt.Printf("[%s]\t\t\t= Dynamics Type\n", m.DynamicsType)
	fmt.Printf("%8.5f\t\t= Sampling Interval\n", m.Dt)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order of R\n", m.ReducedDynamics.Order)
	if m.ReducedDynamics.Fitted {
		fmt.Printf("%8.3e\t\t= Selected Regularization\n", m.ReducedDynamics.Lambda)
		fmt.Printf("%8.3e\t\t= Cross-Validation Error\n", m.ReducedDynamics.CVError)
	}
	for i, lam := range m.DiscreteEigs {
		fmt.Printf("mode %d: discrete %v, continuous %v\n", i, lam, m.ContinuousEigs[i])
	}
}
