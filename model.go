package forecaster

import (
	"fmt"
	"io"
	"strings"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/util"
	"github.com/aouyang1/go-vecm/vecm"
)

// Model is a serializeable representation of a fitted forecaster
type Model struct {
	Options *Options         `json:"options"`
	Cutoff  period.Period    `json:"cutoff"`
	Columns []string         `json:"columns"`
	Horizon *horizon.Horizon `json:"horizon,omitempty"`
	VECM    vecm.Model       `json:"vecm_model"`
}

func (m Model) TablePrint(w io.Writer) error {
	prefix := ""
	indent := "  "

	if _, err := fmt.Fprintf(w, "%s%sForecaster:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sCutoff: %s\n", prefix, util.IndentExpand(indent, 1), m.Cutoff); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sColumns: %s\n", prefix, util.IndentExpand(indent, 1), strings.Join(m.Columns, ", ")); err != nil {
		return err
	}

	fh := "None"
	if m.Horizon != nil {
		fh = m.Horizon.String()
	}
	if _, err := fmt.Fprintf(w, "%s%sHorizon: %s\n", prefix, util.IndentExpand(indent, 1), fh); err != nil {
		return err
	}

	return m.VECM.TablePrint(w, prefix, indent, m.Columns)
}
