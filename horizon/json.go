package horizon

import (
	"github.com/aouyang1/go-vecm/period"
	"github.com/goccy/go-json"
)

type horizonJSON struct {
	Steps   []int           `json:"steps,omitempty"`
	Periods []period.Period `json:"periods,omitempty"`
}

func (h *Horizon) MarshalJSON() ([]byte, error) {
	if h.relative {
		return json.Marshal(horizonJSON{Steps: h.steps})
	}
	return json.Marshal(horizonJSON{Periods: h.periods})
}

func (h *Horizon) UnmarshalJSON(data []byte) error {
	var raw horizonJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		res *Horizon
		err error
	)
	if len(raw.Periods) > 0 {
		res, err = NewAbsolute(raw.Periods...)
	} else {
		res, err = NewRelative(raw.Steps...)
	}
	if err != nil {
		return err
	}
	*h = *res
	return nil
}
