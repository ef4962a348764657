package timedataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/aouyang1/go-vecm/period"
	"gonum.org/v1/gonum/floats"
)

// GenerateIndex returns n consecutive periods starting at start
func GenerateIndex(start period.Period, n int) Index {
	return Index(period.Range(start, n))
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) Scale(c float64) Series {
	floats.Scale(c, s)
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateNoise draws n independent normal samples with the given scale
func GenerateNoise(rng *rand.Rand, n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return Series(y)
}

// GenerateRandomWalk returns the cumulative sum of normal steps with the given scale
func GenerateRandomWalk(rng *rand.Rand, n int, scale float64) Series {
	y := make([]float64, n)
	var level float64
	for i := 0; i < n; i++ {
		level += rng.NormFloat64() * scale
		y[i] = level
	}
	return Series(y)
}

// GenerateRandIntTable fills a table with integers drawn uniformly from [lo, hi)
func GenerateRandIntTable(rng *rand.Rand, index Index, columns []string, lo, hi int) (*TimeDataset, error) {
	if hi <= lo {
		return nil, fmt.Errorf("lo %d, hi %d, %w", lo, hi, ErrInvalidBounds)
	}
	y := make([][]float64, len(index))
	for i := range y {
		y[i] = make([]float64, len(columns))
		for j := range columns {
			y[i][j] = float64(lo + rng.IntN(hi-lo))
		}
	}
	return NewDataset(index, columns, y)
}

// GenerateCointegrated simulates a common random walk x shared by every column. The first column
// is x plus noise and column j > 0 is coef[j-1]*x plus noise, so each pair of columns is
// cointegrated.
func GenerateCointegrated(rng *rand.Rand, index Index, columns []string, coef []float64, walkScale, noiseScale float64) (*TimeDataset, error) {
	n := len(index)
	trend := GenerateRandomWalk(rng, n, walkScale)

	cols := make([]Series, len(columns))
	for j := range columns {
		c := 1.0
		if j > 0 && j-1 < len(coef) {
			c = coef[j-1]
		}
		s := make(Series, n)
		copy(s, trend)
		cols[j] = s.Scale(c).Add(GenerateNoise(rng, n, noiseScale))
	}

	y := make([][]float64, n)
	for i := range y {
		y[i] = make([]float64, len(columns))
		for j := range columns {
			y[i][j] = cols[j][i]
		}
	}
	return NewDataset(index, columns, y)
}
