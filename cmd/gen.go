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
	"math"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/romfit/dynamics"
	"github.com/notargets/romfit/readfiles"
	"github.com/notargets/romfit/utils"
)

type GenModelType uint8

const (
	GenDecay GenModelType = iota
	GenOscillator
	GenCubic
)

type GenModel struct {
	OutFile   string
	ModelRun  GenModelType
	NTraj     int
	NSteps    int
	Dt        float64
	Seed      int64
	Amplitude float64
}

// GenCmd represents the gen command
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic trajectory files for testing the fitter",
	Long: `
Generates sampled trajectories of simple known dynamical systems and
writes them in the CSV format the fit command reads,

romfit gen -o trajectories.csv -m 1`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gen called")
		gm := &GenModel{}
		gm.OutFile, _ = cmd.Flags().GetString("outFile")
		mr, _ := cmd.Flags().GetInt("model")
		gm.ModelRun = GenModelType(mr)
		gm.NTraj, _ = cmd.Flags().GetInt("nTraj")
		gm.NSteps, _ = cmd.Flags().GetInt("nSteps")
		gm.Dt, _ = cmd.Flags().GetFloat64("dt")
		sd, _ := cmd.Flags().GetInt("seed")
		gm.Seed = int64(sd)
		gm.Amplitude, _ = cmd.Flags().GetFloat64("amplitude")
		if len(gm.OutFile) == 0 {
			fmt.Printf("error: must supply an output file (-o, --outFile)\n")
			os.Exit(1)
		}
		RunGen(gm)
	},
}

func init() {
	rootCmd.AddCommand(GenCmd)
	GenCmd.Flags().StringP("outFile", "o", "", "CSV file to write the trajectories to")
	GenCmd.Flags().IntP("model", "m", 0, "model to generate: 0 = Decay, 1 = Oscillator, 2 = Cubic")
	GenCmd.Flags().IntP("nTraj", "t", 3, "number of trajectories")
	GenCmd.Flags().IntP("nSteps", "k", 100, "samples per trajectory")
	GenCmd.Flags().Float64P("dt", "T", 0.01, "sampling interval")
	GenCmd.Flags().IntP("seed", "r", 1, "random seed for initial conditions")
	GenCmd.Flags().Float64P("amplitude", "a", 1., "initial condition amplitude")
}

func RunGen(gm *GenModel) {
	var (
		err   error
		trajs dynamics.TrajectorySet
	)
	trajs = GenerateTrajectories(gm)
	if err = readfiles.WriteTrajectories(gm.OutFile, trajs); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %d trajectories of %d samples to %s\n",
		gm.NTraj, gm.NSteps, gm.OutFile)
}

// GenerateTrajectories samples the chosen map from random initial
// conditions. All models are two dimensional.
func GenerateTrajectories(gm *GenModel) (trajs dynamics.TrajectorySet) {
	var (
		rng  = rand.New(rand.NewSource(gm.Seed))
		step func(x []float64) []float64
	)
	switch gm.ModelRun {
	case GenOscillator:
		// damped rotation, eigenvalues rho*exp(+-i*theta)
		rho, theta := math.Exp(-0.1*gm.Dt), 2.*math.Pi*gm.Dt
		c, s := rho*math.Cos(theta), rho*math.Sin(theta)
		step = func(x []float64) []float64 {
			return []float64{c*x[0] - s*x[1], s*x[0] + c*x[1]}
		}
	case GenCubic:
		// decay with a cubic softening term
		a, b := math.Exp(-0.2*gm.Dt), math.Exp(-1.0*gm.Dt)
		step = func(x []float64) []float64 {
			return []float64{a*x[0] - 0.1*gm.Dt*x[0]*x[0]*x[0], b * x[1]}
		}
	case GenDecay:
		fallthrough
	default:
		a, b := math.Exp(-0.5*gm.Dt), math.Exp(-2.0*gm.Dt)
		step = func(x []float64) []float64 {
			return []float64{a * x[0], b * x[1]}
		}
	}
	trajs = make(dynamics.TrajectorySet, gm.NTraj)
	for it := range trajs {
		var (
			tr = dynamics.Trajectory{
				Time:   utils.NewVector(gm.NSteps),
				States: utils.NewMatrix(2, gm.NSteps),
			}
			x = []float64{
				gm.Amplitude * (2*rng.Float64() - 1),
				gm.Amplitude * (2*rng.Float64() - 1),
			}
		)
		tD := tr.Time.Data()
		for j := 0; j < gm.NSteps; j++ {
			tD[j] = float64(j) * gm.Dt
			tr.States.Set(0, j, x[0])
			tr.States.Set(1, j, x[1])
			x = step(x)
		}
		trajs[it] = tr
	}
	return
}
