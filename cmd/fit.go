/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/romfit/InputParameters"
	"github.com/notargets/romfit/dynamics"
	"github.com/notargets/romfit/readfiles"
	"github.com/notargets/romfit/utils"
)

type FitModel struct {
	TrajFile   string
	ICFile     string
	Style      string
	Order      int
	Graph      bool
	GraphState int
	Delay      time.Duration
	Profile    bool
}

// FitCmd represents the fit command
var FitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a polynomial map to sampled trajectories",
	Long: `
Reads one or more trajectories from a CSV file and identifies a discrete
time polynomial map for the one step dynamics,

romfit fit -F trajectories.csv -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("fit called")
		fm := &FitModel{}
		if fm.TrajFile, err = cmd.Flags().GetString("trajectoriesFile"); err != nil {
			panic(err)
		}
		if fm.ICFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
			panic(err)
		}
		fm.Style, _ = cmd.Flags().GetString("style")
		fm.Order, _ = cmd.Flags().GetInt("order")
		fm.Graph, _ = cmd.Flags().GetBool("graph")
		fm.GraphState, _ = cmd.Flags().GetInt("graphState")
		dr, _ := cmd.Flags().GetInt("delay")
		fm.Delay = time.Duration(dr) * time.Millisecond
		fm.Profile, _ = cmd.Flags().GetBool("profile")
		fp := processFitInput(fm)
		RunFit(fm, fp)
	},
}

func processFitInput(fm *FitModel) (fp *InputParameters.FitParameters) {
	var (
		err      error
		willExit bool
	)
	if len(fm.TrajFile) == 0 {
		err := fmt.Errorf("must supply a trajectory file (-F, --trajectoriesFile) in CSV format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
# t, x1, ..., xk - blank line between trajectories
0.0, 1.0, 0.5
0.1, 0.9, 0.4
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	fp = &InputParameters.FitParameters{}
	if len(fm.ICFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(fm.ICFile); err != nil {
			panic(err)
		}
		if err = fp.Parse(data); err != nil {
			panic(err)
		}
	}
	// command line flags override the parameters file
	if fm.Order != 0 {
		fp.PolynomialOrder = fm.Order
	}
	if len(fm.Style) != 0 {
		fp.Style = fm.Style
	}
	return
}

func init() {
	rootCmd.AddCommand(FitCmd)
	FitCmd.Flags().StringP("trajectoriesFile", "F", "", "Trajectory file to read in CSV format")
	FitCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for input parameters like:\n\t- PolynomialOrder\n\t- Style\n\t- Lambdas")
	FitCmd.Flags().StringP("style", "s", "", "coordinate style: default, modal or normalform")
	FitCmd.Flags().IntP("order", "n", 0, "polynomial order of the fitted map")
	FitCmd.Flags().BoolP("graph", "g", false, "display a graph comparing data with the model roll-out")
	FitCmd.Flags().IntP("graphState", "q", 0, "which state component to display")
	FitCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	FitCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the fit")
}

func RunFit(fm *FitModel, fp *InputParameters.FitParameters) {
	var (
		err   error
		trajs dynamics.TrajectorySet
		m     *dynamics.Model
	)
	if trajs, err = readfiles.ReadTrajectories(fm.TrajFile, true); err != nil {
		panic(err)
	}
	fp.Print()
	if fm.Profile {
		defer profile.Start().Stop()
	}
	if m, err = dynamics.Fit(trajs, fp.Args()...); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	m.Print()
	if fm.Graph {
		if err = checkGraphState(fm.GraphState, trajs); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		plotFit(fm, trajs, m)
	}
}

// checkGraphState rejects a display component outside the state dimension.
func checkGraphState(q int, trajs dynamics.TrajectorySet) (err error) {
	var (
		k, _ = trajs[0].States.Dims()
	)
	if q < 0 || q >= k {
		err = fmt.Errorf("graphState %d out of range: state dimension is %d", q, k)
	}
	return
}

// plotFit overlays one measured state component with the model roll-out
// from the same initial condition, per trajectory.
func plotFit(fm *FitModel, trajs dynamics.TrajectorySet, m *dynamics.Model) {
	var (
		q          = fm.GraphState
		xmin, xmax = trajs[0].Time.Min(), trajs[0].Time.Max()
		fmin, fmax = trajs[0].States.Row(q).Min(), trajs[0].States.Row(q).Max()
	)
	for _, tr := range trajs[1:] {
		xmin = math.Min(xmin, tr.Time.Min())
		xmax = math.Max(xmax, tr.Time.Max())
		fmin = math.Min(fmin, tr.States.Row(q).Min())
		fmax = math.Max(fmax, tr.States.Row(q).Max())
	}
	lc := utils.NewLineChart(1920, 1280, xmin, xmax, fmin, fmax)
	for it, tr := range trajs {
		k, nm := tr.States.Dims()
		x0 := make([]float64, k)
		for i := 0; i < k; i++ {
			x0[i] = tr.States.At(i, 0)
		}
		X := m.Predict(x0, nm-1)
		lc.Plot(fm.Delay, tr.Time.Data(), tr.States.Row(q).Data(), -1,
			fmt.Sprintf("data-%d", it))
		lc.Plot(fm.Delay, tr.Time.Data(), X.Row(q).Data(), 1,
			fmt.Sprintf("model-%d", it))
	}
	// hold the window open
	time.Sleep(10 * time.Second)
}
