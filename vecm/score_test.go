package vecm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScores(t *testing.T) {
	nan := math.NaN()
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  *Scores
		err       error
	}{
		"perfect fit": {
			predicted: []float64{1, 2, 3},
			actual:    []float64{1, 2, 3},
			expected:  &Scores{MSE: 0, MAPE: 0, R2: 1},
		},
		"skips missing": {
			predicted: []float64{nan, 1, 4},
			actual:    []float64{1, 2, 4},
			expected:  &Scores{MSE: 0.5, MAPE: 0.25, R2: 0.5},
		},
		"length mismatch": {
			predicted: []float64{1},
			actual:    []float64{1, 2},
			err:       ErrResLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			s, err := NewScores(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, td.expected.MSE, s.MSE, 1e-12)
			assert.InDelta(t, td.expected.MAPE, s.MAPE, 1e-12)
			assert.InDelta(t, td.expected.R2, s.R2, 1e-12)
		})
	}
}
