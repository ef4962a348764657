// Package horizon describes the future (or past) steps a forecast is requested for. A horizon is
// either relative, integer offsets from the cutoff where 1 is the first period after training,
// or absolute, concrete periods. Entries keep their insertion order and duplicates are kept.
package horizon

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aouyang1/go-vecm/period"
)

var (
	ErrEmptyHorizon    = errors.New("horizon has no steps")
	ErrNotRelative     = errors.New("horizon is not relative")
	ErrNoCutoff        = errors.New("cutoff period is required for conversion")
	ErrFreqMismatch    = errors.New("horizon periods have mixed frequencies")
	ErrStepOutOfRange  = errors.New("step is outside of the dense forecast range")
	ErrInvalidHorizon  = errors.New("invalid horizon value")
	ErrCutoffFreqMatch = errors.New("cutoff frequency does not match horizon")
)

// Horizon is an ordered set of forecast steps
type Horizon struct {
	relative bool
	steps    []int
	periods  []period.Period
}

// NewRelative creates a horizon of offsets from the cutoff
func NewRelative(steps ...int) (*Horizon, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyHorizon
	}
	return &Horizon{
		relative: true,
		steps:    slices.Clone(steps),
	}, nil
}

// NewAbsolute creates a horizon of concrete periods sharing one frequency
func NewAbsolute(periods ...period.Period) (*Horizon, error) {
	if len(periods) == 0 {
		return nil, ErrEmptyHorizon
	}
	freq := periods[0].Freq
	for i, p := range periods {
		if p.Freq == period.FreqUnknown {
			return nil, fmt.Errorf("at %d, %w", i, period.ErrUnknownFreq)
		}
		if p.Freq != freq {
			return nil, fmt.Errorf("at %d, %w", i, ErrFreqMismatch)
		}
	}
	return &Horizon{
		relative: false,
		periods:  slices.Clone(periods),
	}, nil
}

// NewRange creates the contiguous relative horizon 1..n
func NewRange(n int) (*Horizon, error) {
	if n < 1 {
		return nil, ErrEmptyHorizon
	}
	steps := make([]int, n)
	for i := range steps {
		steps[i] = i + 1
	}
	return NewRelative(steps...)
}

// Parse reads a comma separated list of relative steps such as "1,3,4"
func Parse(s string) (*Horizon, error) {
	fields := strings.Split(s, ",")
	steps := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		step, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q, %w", f, ErrInvalidHorizon)
		}
		steps = append(steps, step)
	}
	return NewRelative(steps...)
}

func (h *Horizon) IsRelative() bool {
	return h != nil && h.relative
}

func (h *Horizon) Len() int {
	if h == nil {
		return 0
	}
	if h.relative {
		return len(h.steps)
	}
	return len(h.periods)
}

// Steps returns a copy of the relative offsets. Absolute horizons return nil.
func (h *Horizon) Steps() []int {
	if !h.IsRelative() {
		return nil
	}
	return slices.Clone(h.steps)
}

// Periods returns a copy of the absolute periods. Relative horizons return nil.
func (h *Horizon) Periods() []period.Period {
	if h == nil || h.relative {
		return nil
	}
	return slices.Clone(h.periods)
}

// ToRelative converts the horizon into offsets from cutoff. A relative horizon is returned as a
// copy so the conversion is idempotent. Order is preserved.
func (h *Horizon) ToRelative(cutoff period.Period) (*Horizon, error) {
	if h == nil {
		return nil, ErrEmptyHorizon
	}
	if h.relative {
		return NewRelative(h.steps...)
	}
	if cutoff.IsZero() {
		return nil, ErrNoCutoff
	}
	steps := make([]int, len(h.periods))
	for i, p := range h.periods {
		step, err := p.Sub(cutoff)
		if err != nil {
			return nil, fmt.Errorf("at %d, %v, %w", i, err, ErrCutoffFreqMatch)
		}
		steps[i] = step
	}
	return NewRelative(steps...)
}

// ToAbsolute converts the horizon into concrete periods after cutoff. An absolute horizon is
// returned as a copy.
func (h *Horizon) ToAbsolute(cutoff period.Period) (*Horizon, error) {
	if h == nil {
		return nil, ErrEmptyHorizon
	}
	if !h.relative {
		if !cutoff.IsZero() && cutoff.Freq != h.periods[0].Freq {
			return nil, ErrCutoffFreqMatch
		}
		return NewAbsolute(h.periods...)
	}
	if cutoff.IsZero() {
		return nil, ErrNoCutoff
	}
	periods := make([]period.Period, len(h.steps))
	for i, step := range h.steps {
		periods[i] = cutoff.Add(step)
	}
	return NewAbsolute(periods...)
}

// ToIndexer returns zero based positions into a dense run of steps 1..N, i.e. step-1 for every entry
func (h *Horizon) ToIndexer(cutoff period.Period) ([]int, error) {
	rel, err := h.ToRelative(cutoff)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(rel.steps))
	for i, step := range rel.steps {
		idx[i] = step - 1
	}
	return idx, nil
}

// Max returns the largest relative step
func (h *Horizon) Max() (int, error) {
	if !h.IsRelative() {
		return 0, ErrNotRelative
	}
	return slices.Max(h.steps), nil
}

// Min returns the smallest relative step
func (h *Horizon) Min() (int, error) {
	if !h.IsRelative() {
		return 0, ErrNotRelative
	}
	return slices.Min(h.steps), nil
}

// IsInSample reports whether every step is at or before the cutoff
func (h *Horizon) IsInSample(cutoff period.Period) (bool, error) {
	rel, err := h.ToRelative(cutoff)
	if err != nil {
		return false, err
	}
	maxStep, _ := rel.Max()
	return maxStep <= 0, nil
}

// IsOutOfSample reports whether every step is after the cutoff
func (h *Horizon) IsOutOfSample(cutoff period.Period) (bool, error) {
	rel, err := h.ToRelative(cutoff)
	if err != nil {
		return false, err
	}
	minStep, _ := rel.Min()
	return minStep > 0, nil
}

// InSample returns the relative steps at or before the cutoff, nil if there are none
func (h *Horizon) InSample(cutoff period.Period) (*Horizon, error) {
	return h.filter(cutoff, func(step int) bool { return step <= 0 })
}

// OutOfSample returns the relative steps after the cutoff, nil if there are none
func (h *Horizon) OutOfSample(cutoff period.Period) (*Horizon, error) {
	return h.filter(cutoff, func(step int) bool { return step > 0 })
}

func (h *Horizon) filter(cutoff period.Period, keep func(int) bool) (*Horizon, error) {
	rel, err := h.ToRelative(cutoff)
	if err != nil {
		return nil, err
	}
	steps := make([]int, 0, len(rel.steps))
	for _, step := range rel.steps {
		if keep(step) {
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		return nil, nil
	}
	return NewRelative(steps...)
}

// Equal reports whether both horizons hold the same entries in the same order
func (h *Horizon) Equal(o *Horizon) bool {
	if h == nil || o == nil {
		return h == o
	}
	if h.relative != o.relative {
		return false
	}
	if h.relative {
		return slices.Equal(h.steps, o.steps)
	}
	return slices.Equal(h.periods, o.periods)
}

func (h *Horizon) String() string {
	if h == nil {
		return "[]"
	}
	parts := make([]string, 0, h.Len())
	if h.relative {
		for _, s := range h.steps {
			parts = append(parts, strconv.Itoa(s))
		}
	} else {
		for _, p := range h.periods {
			parts = append(parts, p.String())
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
