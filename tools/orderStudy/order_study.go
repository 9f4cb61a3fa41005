package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/notargets/romfit/dynamics"
	"github.com/notargets/romfit/readfiles"
)

var (
	trajFile string
	maxOrder = 5
	nFolds   = 5
)

/*
Fits maps of increasing polynomial order to the same trajectory file and
prints the cross validated error per order, to pick the order where the
error stops improving.
*/
func main() {
	trajFilePtr := flag.String("trajFile", trajFile, "file containing trajectories in CSV format")
	maxOrderPtr := flag.Int("maxOrder", maxOrder, "highest polynomial order to fit")
	nFoldsPtr := flag.Int("nFolds", nFolds, "number of cross validation folds")
	flag.Parse()
	trajFile = *trajFilePtr
	maxOrder = *maxOrderPtr
	nFolds = *nFoldsPtr
	if len(trajFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", trajFile)
	trajs, err := readfiles.ReadTrajectories(trajFile, true)
	if err != nil {
		panic(err)
	}
	study := runStudy(trajs)
	fmt.Printf("Order, Lambda, CVError\n")
	for i, order := range study.orders {
		fmt.Printf("%d, %8.3e, %8.3e\n", order, study.lambdas[i], study.cvErrs[i])
	}
}

type OrderStudy struct {
	orders  []int
	lambdas []float64
	cvErrs  []float64
}

func (os *OrderStudy) Add(order int, lambda, cvErr float64) {
	os.orders = append(os.orders, order)
	os.lambdas = append(os.lambdas, lambda)
	os.cvErrs = append(os.cvErrs, cvErr)
}

func runStudy(trajs dynamics.TrajectorySet) (study *OrderStudy) {
	var (
		lambdas = []float64{0, 1.e-8, 1.e-6, 1.e-4, 1.e-2, 1}
	)
	study = &OrderStudy{}
	for order := 1; order <= maxOrder; order++ {
		m, err := dynamics.Fit(trajs,
			"R_PolyOrd", order,
			"l_vals", lambdas,
			"n_folds", nFolds,
			"Display", "off",
		)
		if err != nil {
			fmt.Printf("order %d failed: %s\n", order, err.Error())
			continue
		}
		study.Add(order, m.ReducedDynamics.Lambda, m.ReducedDynamics.CVError)
	}
	return
}
