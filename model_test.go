package forecaster

import (
	"bytes"
	"testing"
	"time"

	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/vecm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTablePrint(t *testing.T) {
	testData := map[string]struct {
		m        Model
		expected string
	}{
		"no lags": {
			m: Model{
				Options: NewDefaultOptions(),
				Cutoff:  period.Month(2006, time.May),
				Columns: []string{"A", "B"},
				VECM: vecm.Model{
					Options: &vecm.Options{
						DiffLags:      0,
						CointRank:     1,
						Deterministic: vecm.DeterministicNone,
					},
					Alpha:       [][]float64{{0.5}, {-0.25}},
					Beta:        [][]float64{{1}, {-2}},
					SigmaU:      [][]float64{{1, 0}, {0, 2}},
					Eigenvalues: []float64{0.5, 0.1},
				},
			},
			expected: `Forecaster:
  Cutoff: 2006-05
  Columns: A, B
  Horizon: None
VECM:
  Diff Lags: 0    Coint Rank: 1    Deterministic: n
  Eigenvalues: [0.500 0.100]
  Alpha:
     Variable    ec1
            A  0.500
            B -0.250
  Beta:
     Variable    ec1
            A  1.000
            B -2.000
  Sigma U:
     Variable     A     B
            A 1.000 0.000
            B 0.000 2.000
`,
		},
		"with horizon and constant": {
			m: Model{
				Options: NewDefaultOptions(),
				Cutoff:  period.Month(2006, time.May),
				Columns: []string{"A", "B"},
				Horizon: mustHorizon(t, 1, 3),
				VECM: vecm.Model{
					Options: &vecm.Options{
						DiffLags:      0,
						CointRank:     1,
						Deterministic: vecm.DeterministicConstOutside,
					},
					Alpha:       [][]float64{{0.5}, {-0.25}},
					Beta:        [][]float64{{1}, {-2}},
					Const:       []float64{1.5, -1},
					SigmaU:      [][]float64{{1, 0}, {0, 2}},
					Eigenvalues: []float64{0.5, 0.1},
				},
			},
			expected: `Forecaster:
  Cutoff: 2006-05
  Columns: A, B
  Horizon: ` + mustHorizon(t, 1, 3).String() + `
VECM:
  Diff Lags: 0    Coint Rank: 1    Deterministic: co
  Eigenvalues: [0.500 0.100]
  Alpha:
     Variable    ec1
            A  0.500
            B -0.250
  Beta:
     Variable    ec1
            A  1.000
            B -2.000
  Const:
     Variable  const
            A  1.500
            B -1.000
  Sigma U:
     Variable     A     B
            A 1.000 0.000
            B 0.000 2.000
`,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, td.m.TablePrint(&buf))
			assert.Equal(t, td.expected, buf.String())
		})
	}
}

func TestFittedModelTablePrint(t *testing.T) {
	f := fitVECM(t, trainSplit(t, 42), mustHorizon(t, 1, 2))
	m, err := f.Model()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.TablePrint(&buf))
	out := buf.String()
	assert.Contains(t, out, "Cutoff: 2006-05")
	assert.Contains(t, out, "Gamma:")
	assert.Contains(t, out, "L1.A")
	assert.Contains(t, out, "Scores:")
}
