package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aouyang1/go-vecm/internal/config"
	"github.com/aouyang1/go-vecm/util"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown report format")

// WriteReport writes r to w as json, yaml or an aligned table
func WriteReport(w io.Writer, r *Report, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTable:
		return tablePrintReport(w, r)
	}
	return fmt.Errorf("%q, %w", format, ErrUnknownFormat)
}

func tablePrintReport(w io.Writer, r *Report) error {
	indent := "  "
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}

	steps := make([]string, len(r.Horizon))
	for i, s := range r.Horizon {
		steps[i] = fmt.Sprint(s)
	}

	lines := []string{
		"Comparison:",
		util.IndentExpand(indent, 1) + "Run ID: " + r.RunID,
		util.IndentExpand(indent, 1) + fmt.Sprintf("Seed: %d    Train Rows: %d    Test Rows: %d", r.Seed, r.TrainRows, r.TestRows),
		util.IndentExpand(indent, 1) + "Cutoff: " + r.Cutoff,
		util.IndentExpand(indent, 1) + "Horizon: " + strings.Join(steps, ", "),
		util.IndentExpand(indent, 1) + fmt.Sprintf("Max Abs Diff: %.3e", r.MaxAbsDiff),
		util.IndentExpand(indent, 1) + "Status: " + status,
	}
	if r.Mismatch != "" {
		lines = append(lines, util.IndentExpand(indent, 1)+"Mismatch: "+r.Mismatch)
	}
	lines = append(lines, util.IndentExpand(indent, 1)+"Forecast:")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%sStep\tPeriod\t", util.IndentExpand(indent, 2)); err != nil {
		return err
	}
	for _, c := range r.Columns {
		if _, err := fmt.Fprintf(tbl, "%s\tRef %s\t", c, c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(tbl); err != nil {
		return err
	}

	for i := range r.Forecast {
		step, label := "", ""
		if i < len(r.Horizon) {
			step = fmt.Sprint(r.Horizon[i])
		}
		if i < len(r.Index) {
			label = r.Index[i]
		}
		if _, err := fmt.Fprintf(tbl, "%s%s\t%s\t", util.IndentExpand(indent, 2), step, label); err != nil {
			return err
		}
		for j, v := range r.Forecast[i] {
			ref := 0.0
			if i < len(r.Reference) && j < len(r.Reference[i]) {
				ref = r.Reference[i][j]
			}
			if _, err := fmt.Fprintf(tbl, "%.3f\t%.3f\t", v, ref); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(tbl); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
