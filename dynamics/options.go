package dynamics

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/notargets/romfit/utils"
)

type Style string

const (
	StyleDefault    Style = "default"
	StyleModal      Style = "modal"
	StyleNormalForm Style = "normalform"
)

// Options is the resolved, immutable configuration of one fit. The
// optimizer and normal-form knobs (NFStyle through SpecifyObjectiveGradient)
// belong to the unimplemented normal-form stage and are carried so a
// configuration survives a round trip, but nothing reads them yet.
type Options struct {
	ROrder, ITOrder, NOrder, TOrder int

	C1, C2  float64
	Lambdas []float64

	NFolds    int
	FoldStyle string // "default" | "traj"

	Style  Style
	RCoeff utils.Matrix // preset coefficients: skip regression when non-empty
	Powers [][]int      // preset exponent table overriding ROrder

	MaxCond float64 // eigenvector conditioning limit for modal style
	Rand    *rand.Rand

	NFStyle                  string
	FrequenciesNorm          []float64
	TolNF                    float64
	ICNF                     float64
	Rescale                  int
	FigDispNF                int
	Display                  string
	OptimalityTolerance      float64
	MaxIter                  int
	MaxFunEvals              int
	SpecifyObjectiveGradient bool
}

func DefaultOptions() (o *Options) {
	o = &Options{
		ROrder:  1,
		ITOrder: 1,
		NOrder:  1,
		TOrder:  1,
		Lambdas: []float64{0},
		NFolds:  0,

		FoldStyle: "default",
		Style:     StyleDefault,
		MaxCond:   1.e12,

		NFStyle:                  "center_mfld",
		TolNF:                    10,
		Rescale:                  1,
		FigDispNF:                1,
		Display:                  "iter",
		MaxIter:                  300,
		MaxFunEvals:              1000,
		SpecifyObjectiveGradient: true,
	}
	return
}

// ResolveOptions merges caller overrides onto the defaults. Overrides come
// as key/value pairs against a closed key set; a single bare integer is
// the shorthand for setting both the reduced and conjugate map orders.
func ResolveOptions(args ...interface{}) (o *Options, err error) {
	o = DefaultOptions()
	seen := make(map[string]bool)

	if len(args) == 1 {
		var order int
		if order, err = asInt(args[0]); err != nil {
			err = fmt.Errorf("%w: single positional override must be a polynomial order: %v", ErrInvalidInput, err)
			return
		}
		o.ROrder = order
		o.NOrder = order
		seen["R_PolyOrd"] = true
		seen["N_PolyOrd"] = true
	} else {
		if len(args)%2 != 0 {
			err = fmt.Errorf("%w: option overrides must come in key/value pairs, got %d entries", ErrInvalidInput, len(args))
			return
		}
		for i := 0; i < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				err = fmt.Errorf("%w: option key %v is not a string", ErrInvalidInput, args[i])
				return
			}
			if err = o.set(key, args[i+1]); err != nil {
				return
			}
			seen[key] = true
		}
	}
	err = o.applyCoupling(seen)
	return
}

// set assigns one recognized option, rejecting unknown keys.
func (o *Options) set(key string, val interface{}) (err error) {
	switch key {
	case "R_PolyOrd":
		o.ROrder, err = asInt(val)
	case "iT_PolyOrd":
		o.ITOrder, err = asInt(val)
	case "N_PolyOrd":
		o.NOrder, err = asInt(val)
	case "T_PolyOrd":
		o.TOrder, err = asInt(val)
	case "c1":
		o.C1, err = asFloat(val)
	case "c2":
		o.C2, err = asFloat(val)
	case "l_vals":
		var ok bool
		if o.Lambdas, ok = val.([]float64); !ok {
			err = fmt.Errorf("value %v is not []float64", val)
		}
	case "n_folds":
		o.NFolds, err = asInt(val)
	case "fold_style":
		var s string
		if s, err = asString(val); err == nil {
			if s != "default" && s != "traj" {
				err = fmt.Errorf("unrecognized fold style %q", s)
			} else {
				o.FoldStyle = s
			}
		}
	case "style":
		var s string
		if s, err = asString(val); err == nil {
			switch s {
			case "none", "default", "":
				o.Style = StyleDefault
			case "modal":
				o.Style = StyleModal
			case "normalform":
				o.Style = StyleNormalForm
			default:
				err = fmt.Errorf("unrecognized style %q", s)
			}
		}
	case "R_coeff":
		var ok bool
		if o.RCoeff, ok = val.(utils.Matrix); !ok {
			err = fmt.Errorf("value for R_coeff is not a utils.Matrix")
		}
	case "powers":
		var ok bool
		if o.Powers, ok = val.([][]int); !ok {
			err = fmt.Errorf("value for powers is not [][]int")
		}
	case "cond_max":
		o.MaxCond, err = asFloat(val)
	case "seed":
		var seed int
		if seed, err = asInt(val); err == nil {
			o.Rand = rand.New(rand.NewSource(int64(seed)))
		}
	case "nf_style":
		o.NFStyle, err = asString(val)
	case "frequencies_norm":
		var ok bool
		if o.FrequenciesNorm, ok = val.([]float64); !ok {
			err = fmt.Errorf("value for frequencies_norm is not []float64")
		}
	case "tol_nf":
		o.TolNF, err = asFloat(val)
	case "IC_nf":
		o.ICNF, err = asFloat(val)
	case "rescale":
		o.Rescale, err = asInt(val)
	case "fig_disp_nf":
		o.FigDispNF, err = asInt(val)
	case "Display":
		o.Display, err = asString(val)
	case "OptimalityTolerance":
		o.OptimalityTolerance, err = asFloat(val)
	case "MaxIter":
		o.MaxIter, err = asInt(val)
	case "MaxFunctionEvaluations":
		o.MaxFunEvals, err = asInt(val)
	case "SpecifyObjectiveGradient":
		var ok bool
		if o.SpecifyObjectiveGradient, ok = val.(bool); !ok {
			err = fmt.Errorf("value for SpecifyObjectiveGradient is not bool")
		}
	default:
		err = fmt.Errorf("unrecognized option %q", key)
	}
	if err != nil {
		err = fmt.Errorf("%w: option %q: %v", ErrInvalidInput, key, err)
	}
	return
}

// applyCoupling derives the dependent settings once all overrides are in.
func (o *Options) applyCoupling(seen map[string]bool) (err error) {
	if o.ROrder < 1 || o.ITOrder < 1 || o.NOrder < 1 || o.TOrder < 1 {
		err = fmt.Errorf("%w: polynomial orders must be at least 1", ErrConfiguration)
		return
	}
	if o.Style == StyleNormalForm {
		if !seen["iT_PolyOrd"] && !seen["N_PolyOrd"] && !seen["T_PolyOrd"] {
			// All transform orders left at default: conjugate dynamics
			// track the reduced dynamics order.
			o.NOrder = o.ROrder
		}
		if o.NOrder > 1 {
			if !seen["T_PolyOrd"] && !seen["iT_PolyOrd"] {
				o.TOrder = o.NOrder
				o.ITOrder = o.NOrder
			} else {
				// Never shrink a user-specified order.
				m := o.TOrder
				if o.ITOrder > m {
					m = o.ITOrder
				}
				o.TOrder = m
				o.ITOrder = m
			}
		}
	}
	if o.OptimalityTolerance == 0 {
		o.OptimalityTolerance = math.Pow(10, -o.TolNF)
	}
	return
}

// AssignFolds partitions the ds sample indices per the fold settings. In
// trajectory mode the folds are exactly the trajectory blocks and NFolds
// is overwritten to match; in default mode a random permutation is split
// into NFolds groups of floor(N/NFolds), the remainder going to the last
// group. No folds are assigned when NFolds <= 1.
func (o *Options) AssignFolds(ds *Dataset) (folds []utils.Index, err error) {
	if o.NFolds <= 1 {
		return
	}
	if o.FoldStyle == "traj" {
		o.NFolds = len(ds.Ranges)
		folds = make([]utils.Index, len(ds.Ranges))
		for i, r := range ds.Ranges {
			folds[i] = utils.NewRange(r.Start, r.End-1)
		}
		return
	}
	if o.NFolds > ds.N {
		err = fmt.Errorf("%w: %d folds requested for %d samples", ErrConfiguration, o.NFolds, ds.N)
		return
	}
	rng := o.Rand
	if rng == nil {
		// Not reproducible without the "seed" option; that is the
		// caller's responsibility.
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	var (
		perm = rng.Perm(ds.N)
		size = ds.N / o.NFolds
	)
	folds = make([]utils.Index, o.NFolds)
	for i := 0; i < o.NFolds; i++ {
		lo := i * size
		hi := lo + size
		if i == o.NFolds-1 {
			hi = ds.N // remainder absorbed by the last group
		}
		folds[i] = utils.Index(perm[lo:hi])
	}
	return
}

func asInt(val interface{}) (i int, err error) {
	switch v := val.(type) {
	case int:
		i = v
	case float64:
		if v != math.Trunc(v) {
			err = fmt.Errorf("value %v is not an integer", v)
			return
		}
		i = int(v)
	default:
		err = fmt.Errorf("value %v is not numeric", val)
	}
	return
}

func asFloat(val interface{}) (f float64, err error) {
	switch v := val.(type) {
	case int:
		f = float64(v)
	case float64:
		f = v
	default:
		err = fmt.Errorf("value %v is not numeric", val)
	}
	return
}

func asString(val interface{}) (s string, err error) {
	var ok bool
	if s, ok = val.(string); !ok {
		err = fmt.Errorf("value %v is not a string", val)
	}
	return
}
