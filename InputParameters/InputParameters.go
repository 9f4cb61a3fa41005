package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type FitParameters struct {
	Title           string    `yaml:"Title"`
	PolynomialOrder int       `yaml:"PolynomialOrder"`
	Style           string    `yaml:"Style"`
	C1              float64   `yaml:"C1"`
	C2              float64   `yaml:"C2"`
	Lambdas         []float64 `yaml:"Lambdas"`
	NFolds          int       `yaml:"NFolds"`
	FoldStyle       string    `yaml:"FoldStyle"`
	Seed            int       `yaml:"Seed"`
	MaxCond         float64   `yaml:"MaxCond"`
}

func (fp *FitParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, fp)
}

// Args flattens the parameters into the override list dynamics.Fit
// expects, leaving unset entries at their pipeline defaults.
func (fp *FitParameters) Args() (args []interface{}) {
	if fp.PolynomialOrder > 0 {
		args = append(args, "R_PolyOrd", fp.PolynomialOrder, "N_PolyOrd", fp.PolynomialOrder)
	}
	if fp.Style != "" {
		args = append(args, "style", fp.Style)
	}
	if fp.C1 != 0 {
		args = append(args, "c1", fp.C1)
	}
	if fp.C2 != 0 {
		args = append(args, "c2", fp.C2)
	}
	if len(fp.Lambdas) != 0 {
		args = append(args, "l_vals", fp.Lambdas)
	}
	if fp.NFolds != 0 {
		args = append(args, "n_folds", fp.NFolds)
	}
	if fp.FoldStyle != "" {
		args = append(args, "fold_style", fp.FoldStyle)
	}
	if fp.Seed != 0 {
		args = append(args, "seed", fp.Seed)
	}
	if fp.MaxCond != 0 {
		args = append(args, "cond_max", fp.MaxCond)
	}
	return
}

func (fp *FitParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", fp.Title)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", fp.PolynomialOrder)
	fmt.Printf("[%s]\t\t\t= Style\n", fp.Style)
	fmt.Printf("%8.5f\t\t= C1\n", fp.C1)
	fmt.Printf("%8.5f\t\t= C2\n", fp.C2)
	fmt.Printf("%v\t\t= Regularization Candidates\n", fp.Lambdas)
	fmt.Printf("[%d]\t\t\t\t= Folds (%s)\n", fp.NFolds, fp.FoldStyle)
}
