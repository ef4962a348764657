package forecaster

import (
	"math"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
)

func TestLineData(t *testing.T) {
	testData := map[string]struct {
		input    []float64
		expected []opts.LineData
	}{
		"empty": {
			input:    nil,
			expected: []opts.LineData{},
		},
		"values": {
			input:    []float64{1.5, -2},
			expected: []opts.LineData{{Value: 1.5}, {Value: -2.0}},
		},
		"gaps at nan": {
			input:    []float64{math.NaN(), 3, math.NaN()},
			expected: []opts.LineData{{Value: nil}, {Value: 3.0}, {Value: nil}},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, lineData(td.input))
		})
	}
}

func TestLineTSeries(t *testing.T) {
	x := []string{"2005-01", "2005-02"}
	line := LineTSeries("Residual", []string{"A", "B", "C"}, x, [][]float64{{1, 2}, {3, math.NaN()}})
	// series without data are skipped
	assert.Len(t, line.MultiSeries, 2)
	assert.Equal(t, "A", line.MultiSeries[0].Name)
	assert.Equal(t, "B", line.MultiSeries[1].Name)
}
