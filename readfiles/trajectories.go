package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/romfit/dynamics"
	"github.com/notargets/romfit/utils"
)

/*
Trajectory files are plain CSV, one sample per line:

	t, x1, x2, ..., xk

Samples within one trajectory are consecutive lines; a blank line (or a
line starting with '#') separates trajectories. All trajectories in a
file must share the state dimension k.
*/

func ReadTrajectories(filename string, verbose bool) (trajs dynamics.TrajectorySet, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading trajectory file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s\n %s", filename, err)
		return
	}
	defer file.Close()
	if trajs, err = readTrajectories(file); err != nil {
		return
	}
	if verbose {
		var nSamp int
		for _, tr := range trajs {
			_, m := tr.States.Dims()
			nSamp += m
		}
		k, _ := trajs[0].States.Dims()
		fmt.Printf("NTraj = %d, K = %d, NSamples = %d\n", len(trajs), k, nSamp)
	}
	return
}

func readTrajectories(r io.Reader) (trajs dynamics.TrajectorySet, err error) {
	var (
		reader  = bufio.NewReader(r)
		rows    [][]float64
		k       int
		lineNum int
	)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if k == 0 {
			k = len(rows[0]) - 1
			if k < 1 {
				return fmt.Errorf("line %d: need at least one state column", lineNum)
			}
		}
		tr, err := buildTrajectory(rows, k)
		if err != nil {
			return err
		}
		trajs = append(trajs, tr)
		rows = rows[:0]
		return nil
	}
	for {
		line, rerr := reader.ReadString('\n')
		lineNum++
		line = strings.TrimSpace(line)
		switch {
		case len(line) == 0 || line[0] == '#':
			if err = flush(); err != nil {
				return
			}
		default:
			var vals []float64
			if vals, err = splitFloats(line); err != nil {
				err = fmt.Errorf("line %d: %s", lineNum, err)
				return
			}
			if len(rows) != 0 && len(vals) != len(rows[0]) {
				err = fmt.Errorf("line %d: %d fields, expected %d", lineNum, len(vals), len(rows[0]))
				return
			}
			rows = append(rows, vals)
		}
		if rerr != nil {
			break
		}
	}
	if err = flush(); err != nil {
		return
	}
	if len(trajs) == 0 {
		err = fmt.Errorf("no trajectory data found")
	}
	return
}

func buildTrajectory(rows [][]float64, k int) (tr dynamics.Trajectory, err error) {
	var (
		m = len(rows)
	)
	if len(rows[0])-1 != k {
		err = fmt.Errorf("trajectory has %d state columns, expected %d", len(rows[0])-1, k)
		return
	}
	tr.Time = utils.NewVector(m)
	tr.States = utils.NewMatrix(k, m)
	tD := tr.Time.Data()
	for j, row := range rows {
		tD[j] = row[0]
		for i := 0; i < k; i++ {
			tr.States.Set(i, j, row[i+1])
		}
	}
	return
}

func splitFloats(line string) (vals []float64, err error) {
	var (
		v float64
	)
	fields := strings.Split(line, ",")
	vals = make([]float64, len(fields))
	for i, f := range fields {
		if v, err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			err = fmt.Errorf("bad value %q", strings.TrimSpace(f))
			return
		}
		vals[i] = v
	}
	return
}

// WriteTrajectories writes the set in the same CSV layout ReadTrajectories
// accepts, one blank line between trajectories.
func WriteTrajectories(filename string, trajs dynamics.TrajectorySet) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		err = fmt.Errorf("unable to create file %s\n %s", filename, err)
		return
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	defer writer.Flush()
	for it, tr := range trajs {
		if it != 0 {
			fmt.Fprintf(writer, "\n")
		}
		k, m := tr.States.Dims()
		for j := 0; j < m; j++ {
			fmt.Fprintf(writer, "%.15g", tr.Time.AtVec(j))
			for i := 0; i < k; i++ {
				fmt.Fprintf(writer, ",%.15g", tr.States.At(i, j))
			}
			fmt.Fprintf(writer, "\n")
		}
	}
	return
}
