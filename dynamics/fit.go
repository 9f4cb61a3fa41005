package dynamics

import (
	"errors"
	"fmt"

	"github.com/notargets/romfit/basis"
	"github.com/notargets/romfit/regression"
	"github.com/notargets/romfit/spectral"
	"github.com/notargets/romfit/utils"
)

// Fit identifies a discrete-time polynomial map R with x_next ~ R(x) from
// the sampled trajectories, then derives the style-dependent coordinate
// change. Overrides follow the ResolveOptions conventions. The call is
// synchronous and owns no state across invocations: it returns either a
// complete Model or a typed failure, never a partial model.
func Fit(trajs TrajectorySet, args ...interface{}) (m *Model, err error) {
	var o *Options
	if o, err = ResolveOptions(args...); err != nil {
		return
	}
	return FitWithOptions(trajs, o)
}

func FitWithOptions(trajs TrajectorySet, o *Options) (m *Model, err error) {
	var (
		ds *Dataset
	)
	if ds, err = Assemble(trajs); err != nil {
		return
	}

	var b *basis.Basis
	if o.Powers != nil {
		if b, err = basis.NewFromExponents(o.Powers); err != nil {
			err = fmt.Errorf("%w: powers table: %v", ErrInvalidInput, err)
			return
		}
		if b.Dim != ds.K {
			err = fmt.Errorf("%w: powers table is over %d variables, data has dimension %d", ErrInvalidInput, b.Dim, ds.K)
			return
		}
	} else {
		b = basis.New(ds.K, o.ROrder)
	}

	var R *PolynomialMap
	if R, err = fitReducedDynamics(ds, b, o); err != nil {
		return
	}

	A := R.LinearPart()
	if !A.IsReal(1.e-10) {
		err = fmt.Errorf("%w: fitted linear part has non-real coefficients", ErrNumerical)
		return
	}
	var dec *spectral.Decomposition
	if dec, err = spectral.Decompose(A.Real(), ds.Dt); err != nil {
		err = fmt.Errorf("%w: spectral analysis: %v", ErrNumerical, err)
		return
	}

	var iT, T, N *PolynomialMap
	if iT, T, N, err = buildTransforms(o.Style, R, dec, o.MaxCond); err != nil {
		return
	}

	m = &Model{
		ReducedDynamics:       R,
		InverseTransformation: iT,
		ConjugateDynamics:     N,
		Transformation:        T,
		Style:                 o.Style,
		DynamicsType:          "map",
		Dt:                    ds.Dt,
		DiscreteEigs:          dec.DiscreteEigs,
		ContinuousEigs:        dec.ContinuousEigs,
		Eigenvectors:          dec.V,
	}
	return
}

// fitReducedDynamics runs the weighted cross-validated regression, or
// skips it entirely when preset coefficients are configured so a prior
// fit can be reused while still recomputing the coordinate transforms.
func fitReducedDynamics(ds *Dataset, b *basis.Basis, o *Options) (R *PolynomialMap, err error) {
	if !o.RCoeff.IsEmpty() {
		nr, nc := o.RCoeff.Dims()
		if nr != ds.K || nc != b.NTerms {
			err = fmt.Errorf("%w: preset R coefficients are %v x %v, need %v x %v", ErrInvalidInput, nr, nc, ds.K, b.NTerms)
			return
		}
		R = NewFittedMap(o.RCoeff, b, 0, 0)
		return
	}

	var w utils.Vector
	if w, err = ComputeWeights(ds.T, o.C1, o.C2); err != nil {
		return
	}
	var folds []utils.Index
	if folds, err = o.AssignFolds(ds); err != nil {
		return
	}
	if o.Display == "iter" {
		fmt.Printf("reduced dynamics estimation in progress: %d samples, %d features\n", ds.N, b.NTerms)
	}
	Phi := b.Evaluate(ds.X)
	res, rerr := regression.Ridge(Phi, ds.XNext, regression.Options{
		Lambdas: o.Lambdas,
		Weights: w,
		Folds:   folds,
	})
	if rerr != nil {
		if errors.Is(rerr, regression.ErrSingular) {
			err = fmt.Errorf("%w: reduced dynamics regression: %v", ErrNumerical, rerr)
		} else {
			err = fmt.Errorf("%w: reduced dynamics regression: %v", ErrConfiguration, rerr)
		}
		return
	}
	R = NewFittedMap(res.W, b, res.Lambda, res.CVError)
	return
}
