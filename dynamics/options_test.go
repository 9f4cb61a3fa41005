package dynamics

import (
	"errors"
	"testing"

	"github.com/notargets/romfit/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o, err := ResolveOptions()
	require.NoError(t, err)
	assert.Equal(t, 1, o.ROrder)
	assert.Equal(t, 1, o.ITOrder)
	assert.Equal(t, 1, o.NOrder)
	assert.Equal(t, 1, o.TOrder)
	assert.Equal(t, 0., o.C1)
	assert.Equal(t, 0., o.C2)
	assert.Equal(t, []float64{0}, o.Lambdas)
	assert.Equal(t, 0, o.NFolds)
	assert.Equal(t, StyleDefault, o.Style)
	assert.Equal(t, "center_mfld", o.NFStyle)
	assert.Equal(t, 300, o.MaxIter)
	assert.Equal(t, 1000, o.MaxFunEvals)
	assert.True(t, o.SpecifyObjectiveGradient)
	// Optimality tolerance derives from tol_nf
	assert.True(t, near(o.OptimalityTolerance, 1.e-10))
}

func TestPositionalShortcut(t *testing.T) {
	o, err := ResolveOptions(3)
	require.NoError(t, err)
	assert.Equal(t, 3, o.ROrder)
	assert.Equal(t, 3, o.NOrder)
	assert.Equal(t, 1, o.TOrder)
	assert.Equal(t, 1, o.ITOrder)
}

func TestResolveRejects(t *testing.T) {
	// Odd-length override list beyond the positional shortcut
	_, err := ResolveOptions("R_PolyOrd", 2, "c1")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ResolveOptions("no_such_option", 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ResolveOptions("style", "cylindrical")
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ResolveOptions(2, "R_PolyOrd")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestNormalFormOrderCoupling(t *testing.T) {
	// All transform orders default: N tracks R
	o, err := ResolveOptions("style", "normalform", "R_PolyOrd", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, o.NOrder)
	assert.Equal(t, 5, o.TOrder)
	assert.Equal(t, 5, o.ITOrder)

	// N set above 1 with T, iT untouched: both follow N
	o, err = ResolveOptions("style", "normalform", "R_PolyOrd", 4, "N_PolyOrd", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, o.NOrder)
	assert.Equal(t, 3, o.TOrder)
	assert.Equal(t, 3, o.ITOrder)

	// User-specified T is never shrunk; iT is pulled up to match
	o, err = ResolveOptions("style", "normalform", "N_PolyOrd", 2, "T_PolyOrd", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, o.TOrder)
	assert.Equal(t, 7, o.ITOrder)
}

func testDataset(t *testing.T, lengths ...int) (ds *Dataset) {
	t.Helper()
	var trajs TrajectorySet
	for _, m := range lengths {
		time := make([]float64, m)
		states := make([]float64, m)
		for j := 0; j < m; j++ {
			time[j] = 0.1 * float64(j)
			states[j] = float64(j + 1)
		}
		trajs = append(trajs, Trajectory{
			Time:   utils.NewVector(m, time),
			States: utils.NewMatrix(1, m, states),
		})
	}
	ds, err := Assemble(trajs)
	require.NoError(t, err)
	return
}

// Trajectory mode: one fold per trajectory, matching its block exactly,
// and n_folds overwritten to the trajectory count.
func TestTrajectoryFolds(t *testing.T) {
	ds := testDataset(t, 5, 3, 4)
	o, err := ResolveOptions("n_folds", 2, "fold_style", "traj")
	require.NoError(t, err)
	folds, err := o.AssignFolds(ds)
	require.NoError(t, err)
	require.Equal(t, 3, o.NFolds)
	require.Equal(t, 3, len(folds))
	for i, r := range ds.Ranges {
		assert.Equal(t, utils.NewRange(r.Start, r.End-1), folds[i])
	}
}

// Default mode: folds partition all N indices exactly once, sizes equal
// up to the remainder absorbed by the last group.
func TestRandomFolds(t *testing.T) {
	ds := testDataset(t, 6, 6)
	o, err := ResolveOptions("n_folds", 3, "seed", 7)
	require.NoError(t, err)
	folds, err := o.AssignFolds(ds)
	require.NoError(t, err)
	require.Equal(t, 3, len(folds))

	hit := make([]int, ds.N)
	for i, fold := range folds {
		if i < len(folds)-1 {
			assert.Equal(t, ds.N/3, len(fold))
		}
		for _, j := range fold {
			hit[j]++
		}
	}
	for j, c := range hit {
		assert.Equal(t, 1, c, "index %d", j)
	}

	// Same seed, same assignment
	o2, err := ResolveOptions("n_folds", 3, "seed", 7)
	require.NoError(t, err)
	folds2, err := o2.AssignFolds(ds)
	require.NoError(t, err)
	assert.Equal(t, folds, folds2)
}

func TestFoldRejects(t *testing.T) {
	ds := testDataset(t, 3)
	o, err := ResolveOptions("n_folds", 10, "seed", 1)
	require.NoError(t, err)
	_, err = o.AssignFolds(ds)
	assert.True(t, errors.Is(err, ErrConfiguration))

	// No folds at all below the threshold
	o, err = ResolveOptions("n_folds", 1)
	require.NoError(t, err)
	folds, err := o.AssignFolds(ds)
	require.NoError(t, err)
	assert.Nil(t, folds)
}
