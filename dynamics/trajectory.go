package dynamics

import (
	"fmt"

	"github.com/notargets/romfit/utils"
)

// Trajectory is one sampled orbit: Time holds m sample instants and
// States the corresponding states in columns (k x m).
type Trajectory struct {
	Time   utils.Vector
	States utils.Matrix
}

type TrajectorySet []Trajectory

// IndexRange is the half-open [Start,End) block a trajectory occupies in
// the concatenated sample ordering.
type IndexRange struct {
	Start, End int
}

func (r IndexRange) Len() int { return r.End - r.Start }

// Dataset is the one-step-ahead regression form of a trajectory set:
// column j of XNext is the successor of column j of X within the same
// trajectory, T is the sample instant of each predictor column, and
// Ranges records each trajectory's block for trajectory-mode folding.
type Dataset struct {
	X, XNext utils.Matrix
	T        utils.Vector
	Ranges   []IndexRange
	Dt       float64
	K, N     int
}

// Assemble drops the last sample of each trajectory from the predictors
// and the first from the successors, concatenating in input order.
//
// Dt is taken from the first trajectory's first two time samples and used
// globally; other trajectories are not checked against it. The
// continuous-eigenvalue conversion downstream depends on this single
// shared Dt, so mixed-rate data silently degrades rather than failing.
func Assemble(trajs TrajectorySet) (ds *Dataset, err error) {
	if len(trajs) == 0 {
		err = fmt.Errorf("%w: empty trajectory set", ErrInvalidInput)
		return
	}
	var (
		k, nTotal int
	)
	for it, tr := range trajs {
		var (
			kt, m = tr.States.Dims()
		)
		if tr.Time.Len() != m {
			err = fmt.Errorf("%w: trajectory %d has %d time samples for %d states", ErrInvalidInput, it, tr.Time.Len(), m)
			return
		}
		if m < 2 {
			err = fmt.Errorf("%w: trajectory %d has %d samples, need at least 2", ErrInvalidInput, it, m)
			return
		}
		if it == 0 {
			k = kt
		} else if kt != k {
			err = fmt.Errorf("%w: trajectory %d has state dimension %d, expected %d", ErrInvalidInput, it, kt, k)
			return
		}
		nTotal += m - 1
	}
	dt := trajs[0].Time.AtVec(1) - trajs[0].Time.AtVec(0)
	if dt <= 0 {
		err = fmt.Errorf("%w: non-positive sampling interval %v in first trajectory", ErrInvalidInput, dt)
		return
	}

	ds = &Dataset{
		X:      utils.NewMatrix(k, nTotal),
		XNext:  utils.NewMatrix(k, nTotal),
		T:      utils.NewVector(nTotal),
		Ranges: make([]IndexRange, len(trajs)),
		Dt:     dt,
		K:      k,
		N:      nTotal,
	}
	var col int
	for it, tr := range trajs {
		var (
			_, m  = tr.States.Dims()
			start = col
		)
		for j := 0; j < m-1; j++ {
			for i := 0; i < k; i++ {
				ds.X.Set(i, col, tr.States.At(i, j))
				ds.XNext.Set(i, col, tr.States.At(i, j+1))
			}
			ds.T.Data()[col] = tr.Time.AtVec(j)
			col++
		}
		ds.Ranges[it] = IndexRange{Start: start, End: col}
	}
	return
}
