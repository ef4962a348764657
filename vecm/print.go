package vecm

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/aouyang1/go-vecm/util"
)

// TablePrint writes the model coefficients as indented tables. Columns name the variables and
// default to y1..yK.
func (m Model) TablePrint(w io.Writer, prefix, indent string, columns []string) error {
	k := len(m.Alpha)
	if len(columns) != k {
		columns = make([]string, k)
		for i := range columns {
			columns[i] = "y" + strconv.Itoa(i+1)
		}
	}

	if _, err := fmt.Fprintf(w, "%s%sVECM:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "%s%sDiff Lags: %d    Coint Rank: %d    Deterministic: %s\n",
			prefix, util.IndentExpand(indent, 1),
			m.Options.DiffLags, m.Options.CointRank, m.Options.Deterministic,
		); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s%sEigenvalues: %.3f\n", prefix, util.IndentExpand(indent, 1), m.Eigenvalues); err != nil {
		return err
	}

	rank := 0
	if len(m.Alpha) > 0 {
		rank = len(m.Alpha[0])
	}
	ecLabels := make([]string, rank)
	for i := range ecLabels {
		ecLabels[i] = "ec" + strconv.Itoa(i+1)
	}

	if err := tablePrintMatrix(w, prefix, indent, 1, "Alpha", columns, ecLabels, m.Alpha); err != nil {
		return err
	}
	if err := tablePrintMatrix(w, prefix, indent, 1, "Beta", columns, ecLabels, m.Beta); err != nil {
		return err
	}
	if len(m.Gamma) > 0 {
		lagLabels := make([]string, 0, len(m.Gamma[0]))
		for lag := 1; len(columns) > 0 && len(lagLabels) < len(m.Gamma[0]); lag++ {
			for _, c := range columns {
				lagLabels = append(lagLabels, "L"+strconv.Itoa(lag)+"."+c)
			}
		}
		if err := tablePrintMatrix(w, prefix, indent, 1, "Gamma", columns, lagLabels, m.Gamma); err != nil {
			return err
		}
	}
	if m.Options != nil && m.Options.Deterministic == DeterministicConstOutside {
		constant := make([][]float64, len(m.Const))
		for i, c := range m.Const {
			constant[i] = []float64{c}
		}
		if err := tablePrintMatrix(w, prefix, indent, 1, "Const", columns, []string{"const"}, constant); err != nil {
			return err
		}
	}
	if err := tablePrintMatrix(w, prefix, indent, 1, "Sigma U", columns, columns, m.SigmaU); err != nil {
		return err
	}

	if len(m.Scores) == 0 {
		return nil
	}
	scores := make([][]float64, len(m.Scores))
	for i, s := range m.Scores {
		scores[i] = []float64{s.MAPE, s.MSE, s.R2}
	}
	return tablePrintMatrix(w, prefix, indent, 1, "Scores", columns, []string{"MAPE", "MSE", "R2"}, scores)
}

func tablePrintMatrix(w io.Writer, prefix, indent string, indentGrowth int, title string, rowLabels, colLabels []string, data [][]float64) error {
	if _, err := fmt.Fprintf(w, "%s%s%s:\n", prefix, util.IndentExpand(indent, indentGrowth), title); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sVariable\t", prefix, util.IndentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	for _, label := range colLabels {
		if _, err := fmt.Fprintf(tbl, "%s\t", label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(tbl); err != nil {
		return err
	}

	for i, row := range data {
		label := ""
		if i < len(rowLabels) {
			label = rowLabels[i]
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t", prefix, util.IndentExpand(indent, indentGrowth+1), label); err != nil {
			return err
		}
		for _, v := range row {
			if _, err := fmt.Fprintf(tbl, "%.3f\t", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(tbl); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
