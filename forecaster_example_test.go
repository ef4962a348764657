package forecaster

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/aouyang1/go-vecm/modelselection"
	"github.com/aouyang1/go-vecm/period"
	"github.com/aouyang1/go-vecm/timedataset"
)

func Example_vecmForecast() {
	rng := rand.New(rand.NewPCG(42, 42))
	index := timedataset.GenerateIndex(period.Month(2005, time.January), 23)
	y, err := timedataset.GenerateRandIntTable(rng, index, []string{"A", "B"}, 1, 10)
	if err != nil {
		panic(err)
	}

	train, _, err := modelselection.TemporalTrainTestSplit(y, nil)
	if err != nil {
		panic(err)
	}

	fh, err := horizon.NewRelative(1, 3, 4, 5, 7, 9)
	if err != nil {
		panic(err)
	}

	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	if err := f.Fit(train, fh); err != nil {
		panic(err)
	}

	res, err := f.Predict(nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Index)
	fmt.Println(res.Len(), len(res.Columns))
	// Output:
	// [2006-06 2006-08 2006-09 2006-10 2006-12 2007-02]
	// 6 2
}

func Example_vecmPlotFit() {
	rng := rand.New(rand.NewPCG(3, 5))
	index := timedataset.GenerateIndex(period.Month(1990, time.January), 240)
	y, err := timedataset.GenerateCointegrated(rng, index, []string{"A", "B"}, []float64{0.5}, 1.0, 0.5)
	if err != nil {
		panic(err)
	}

	opt := NewDefaultOptions()
	opt.VECMOptions.DiffLags = 2

	f, err := New(opt)
	if err != nil {
		panic(err)
	}
	if err := f.Fit(y, nil); err != nil {
		panic(err)
	}

	m, err := f.Model()
	if err != nil {
		panic(err)
	}
	if err := m.TablePrint(os.Stderr); err != nil {
		panic(err)
	}

	file, err := os.CreateTemp("", "vecm_forecast_*.html")
	if err != nil {
		panic(err)
	}
	defer os.Remove(file.Name())
	defer file.Close()

	if err := f.PlotFit(file, nil); err != nil {
		panic(err)
	}
	// Output:
}
