package timedataset

import (
	"fmt"

	"github.com/aouyang1/go-vecm/period"
)

// Index is an ordered slice of periods labelling the rows of a TimeDataset
type Index []period.Period

func (idx Index) StartPeriod() period.Period {
	var start period.Period
	if len(idx) < 1 {
		return start
	}
	return idx[0]
}

func (idx Index) EndPeriod() period.Period {
	var end period.Period
	if len(idx) < 1 {
		return end
	}
	return idx[len(idx)-1]
}

// Freq returns the frequency of the first period
func (idx Index) Freq() period.Freq {
	return idx.StartPeriod().Freq
}

// Validate checks the index shares one frequency and advances by exactly one period per row
func (idx Index) Validate() error {
	if len(idx) == 0 {
		return ErrNoTrainingData
	}
	freq := idx[0].Freq
	if freq == period.FreqUnknown {
		return fmt.Errorf("at 0, %w", period.ErrUnknownFreq)
	}
	for i := 1; i < len(idx); i++ {
		if idx[i].Freq != freq {
			return fmt.Errorf("at %d, %w", i, ErrFreqMismatch)
		}
		delta := idx[i].Ordinal - idx[i-1].Ordinal
		if delta <= 0 {
			return fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
		if delta != 1 {
			return fmt.Errorf("gap of %d periods at %d, %w", delta, i, ErrIrregularIndex)
		}
	}
	return nil
}

// Position returns the row holding p or -1 if p is outside of the index
func (idx Index) Position(p period.Period) int {
	if len(idx) == 0 || p.Freq != idx.Freq() {
		return -1
	}
	pos := int(p.Ordinal - idx[0].Ordinal)
	if pos < 0 || pos >= len(idx) || !idx[pos].Equal(p) {
		return -1
	}
	return pos
}

func (idx Index) Strings() []string {
	out := make([]string, len(idx))
	for i, p := range idx {
		out[i] = p.String()
	}
	return out
}
