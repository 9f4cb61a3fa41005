package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/romfit/utils"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular marks a normal-equations solve that failed outright, as
// opposed to an ill-posed request.
var ErrSingular = errors.New("singular normal equations")

// Options configures a ridge solve. Lambdas are the candidate penalty
// values; Folds, when non-nil, partition the sample columns for
// cross-validated selection among them. Weights holds one non-negative
// entry per sample column; empty means uniform.
type Options struct {
	Lambdas []float64
	Weights utils.Vector
	Folds   []utils.Index
}

// Result is the fitted coefficient matrix W (targets x features) for the
// model Y ~ W*Phi, the selected penalty, and the cross-validation error
// curve over the candidates (empty when no folds were supplied).
type Result struct {
	W        utils.Matrix
	Lambda   float64
	CVError  float64
	CVErrors []float64
}

// Ridge solves the weighted ridge regression min over W of
// sum_j w_j ||y_j - W phi_j||^2 + lambda ||W||^2, selecting lambda among
// the candidates by weighted cross-validation error when folds are given,
// then refitting on the full dataset with the winner.
func Ridge(Phi, Y utils.Matrix, opts Options) (res *Result, err error) {
	var (
		nF, n = Phi.Dims()
		_, nY = Y.Dims()
		w     []float64
	)
	if n != nY {
		err = fmt.Errorf("sample count mismatch: Phi has %v columns, Y has %v", n, nY)
		return
	}
	if len(opts.Lambdas) == 0 {
		err = fmt.Errorf("no candidate regularization values supplied")
		return
	}
	if opts.Weights.V != nil {
		if opts.Weights.Len() != n {
			err = fmt.Errorf("weight count mismatch: %v weights for %v samples", opts.Weights.Len(), n)
			return
		}
		w = opts.Weights.Data()
	} else {
		w = utils.ConstArray(n, 1)
	}
	if nF > n {
		fmt.Printf("note: underdetermined fit, %d features from %d samples\n", nF, n)
	}

	res = &Result{}
	if len(opts.Folds) == 0 {
		if len(opts.Lambdas) > 1 {
			err = fmt.Errorf("%v candidate regularization values but no cross-validation folds", len(opts.Lambdas))
			return
		}
		res.Lambda = opts.Lambdas[0]
	} else {
		if res.Lambda, res.CVError, res.CVErrors, err = crossValidate(Phi, Y, w, opts.Lambdas, opts.Folds); err != nil {
			return
		}
	}
	res.W, err = solve(Phi, Y, w, nil, res.Lambda)
	return
}

// crossValidate returns the candidate with the smallest weighted held-out
// error, together with that error and the full error curve.
func crossValidate(Phi, Y utils.Matrix, w []float64, lambdas []float64, folds []utils.Index) (best, bestErr float64, curve []float64, err error) {
	var (
		_, n = Phi.Dims()
	)
	held := make([]bool, n)
	curve = make([]float64, len(lambdas))
	for il, lambda := range lambdas {
		var total, wsum float64
		for _, fold := range folds {
			if len(fold) == 0 {
				err = fmt.Errorf("empty cross-validation fold")
				return
			}
			for i := range held {
				held[i] = false
			}
			for _, j := range fold {
				if j < 0 || j >= n {
					err = fmt.Errorf("fold index %v out of range [0,%v)", j, n)
					return
				}
				held[j] = true
			}
			var train utils.Index
			for j := 0; j < n; j++ {
				if !held[j] {
					train = append(train, j)
				}
			}
			if len(train) == 0 {
				err = fmt.Errorf("cross-validation fold holds out every sample")
				return
			}
			var W utils.Matrix
			if W, err = solve(Phi, Y, w, train, lambda); err != nil {
				return
			}
			t, s := heldOutError(Phi, Y, W, w, fold)
			total += t
			wsum += s
		}
		if wsum > 0 {
			curve[il] = total / wsum
		}
	}
	best, bestErr = lambdas[0], curve[0]
	for il, e := range curve {
		if e < bestErr {
			best, bestErr = lambdas[il], e
		}
	}
	return
}

func heldOutError(Phi, Y, W utils.Matrix, w []float64, fold utils.Index) (total, wsum float64) {
	var (
		k, _  = Y.Dims()
		nF, _ = Phi.Dims()
	)
	for _, j := range fold {
		var sq float64
		for i := 0; i < k; i++ {
			var pred float64
			for f := 0; f < nF; f++ {
				pred += W.At(i, f) * Phi.At(f, j)
			}
			r := Y.At(i, j) - pred
			sq += r * r
		}
		total += w[j] * sq
		wsum += w[j]
	}
	return
}

// solve fits W on the sample columns in train (all columns when nil) via
// the weighted normal equations (Phi D Phi^T + lambda I) W^T = Phi D Y^T,
// Cholesky first with an LU fallback.
func solve(Phi, Y utils.Matrix, w []float64, train utils.Index, lambda float64) (W utils.Matrix, err error) {
	var (
		nF, _ = Phi.Dims()
		k, _  = Y.Dims()
		P, T  = Phi, Y
		wt    = w
	)
	if lambda < 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		err = fmt.Errorf("invalid regularization value %v", lambda)
		return
	}
	if train != nil {
		P = Phi.SliceCols(train)
		T = Y.SliceCols(train)
		wt = make([]float64, len(train))
		for i, j := range train {
			wt[i] = w[j]
		}
	}
	PW := P.Copy().ScaleCols(wt)
	G := PW.Mul(P.Transpose())
	for i := 0; i < nF; i++ {
		G.Set(i, i, G.At(i, i)+lambda)
	}
	RHS := PW.Mul(T.Transpose())

	Wt := utils.NewMatrix(nF, k)
	if !solveCholesky(G, RHS, Wt) {
		var lu mat.LU
		lu.Factorize(G.M)
		if err = lu.SolveTo(Wt.M, false, RHS.M); err != nil {
			err = fmt.Errorf("%w: %v", ErrSingular, err)
			return
		}
	}
	W = Wt.Transpose()
	return
}

func solveCholesky(G, RHS, Wt utils.Matrix) (ok bool) {
	var (
		nF, _ = G.Dims()
		sym   = mat.NewSymDense(nF, nil)
		ch    mat.Cholesky
	)
	for i := 0; i < nF; i++ {
		for j := i; j < nF; j++ {
			sym.SetSym(i, j, 0.5*(G.At(i, j)+G.At(j, i)))
		}
	}
	if !ch.Factorize(sym) {
		return false
	}
	if err := ch.SolveTo(Wt.M, RHS.M); err != nil {
		return false
	}
	return true
}
