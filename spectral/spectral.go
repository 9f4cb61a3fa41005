package spectral

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/notargets/romfit/utils"
	"gonum.org/v1/gonum/mat"
)

// Decomposition holds the sorted eigenstructure of a discrete-time linear
// map sampled at interval Dt. Columns of V are the eigenvectors in sorted
// order; DiscreteEigs are the map's eigenvalues and ContinuousEigs their
// principal-branch images log(lambda)/Dt.
//
// Sort criterion, fixed across calls: descending real part of the
// continuous eigenvalue (slowest-decaying mode first), ties broken by
// ascending continuous frequency magnitude. Consumers must not rely on
// any property of the order beyond its determinism.
type Decomposition struct {
	V              utils.CMatrix
	DiscreteEigs   []complex128
	ContinuousEigs []complex128
	LambdaDiag     utils.CMatrix
	Dt             float64
}

// Decompose extracts and sorts the eigenpairs of the k x k map A.
func Decompose(A utils.Matrix, dt float64) (d *Decomposition, err error) {
	var (
		nr, nc = A.Dims()
		eig    mat.Eigen
	)
	if nr != nc {
		err = fmt.Errorf("linear part must be square, got %v x %v", nr, nc)
		return
	}
	if dt <= 0 || math.IsNaN(dt) {
		err = fmt.Errorf("sampling interval must be positive, got %v", dt)
		return
	}
	if ok := eig.Factorize(A.M, mat.EigenRight); !ok {
		err = fmt.Errorf("eigendecomposition did not converge")
		return
	}
	var (
		vals = eig.Values(nil)
		vecs mat.CDense
		k    = nr
	)
	eig.VectorsTo(&vecs)

	cont := make([]complex128, k)
	for i, lam := range vals {
		if cmplx.Abs(lam) == 0 {
			err = fmt.Errorf("zero eigenvalue: linear part is singular, no continuous-time image")
			return
		}
		cont[i] = cmplx.Log(lam) / complex(dt, 0)
	}

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := cont[order[a]], cont[order[b]]
		if real(ca) != real(cb) {
			return real(ca) > real(cb)
		}
		return math.Abs(imag(ca)) < math.Abs(imag(cb))
	})

	d = &Decomposition{
		V:              utils.NewCMatrix(k, k),
		DiscreteEigs:   make([]complex128, k),
		ContinuousEigs: make([]complex128, k),
		Dt:             dt,
	}
	for jNew, jOld := range order {
		d.DiscreteEigs[jNew] = vals[jOld]
		d.ContinuousEigs[jNew] = cont[jOld]
		for i := 0; i < k; i++ {
			d.V.Set(i, jNew, vecs.At(i, jOld))
		}
	}
	d.LambdaDiag = utils.NewCDiagMatrix(d.DiscreteEigs)
	return
}
