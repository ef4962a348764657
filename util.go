package forecaster

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/aouyang1/go-vecm/horizon"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrNoTrainingData = errors.New("forecaster has no training data to plot")

// lineData converts values to chart points leaving gaps at NaN
func lineData(y []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

// LineTSeries generates an echart multi-line chart for some arbitrary period/value combination. Every
// series in y must have the same length as the x axis labels.
func LineTSeries(title string, seriesName []string, x []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	line = line.SetXAxis(x)
	for i, series := range seriesName {
		if i >= len(y) {
			break
		}
		line = line.AddSeries(series, lineData(y[i]))
	}
	return line
}

// LineForecaster generates an echart line chart for a single column plotting the actual and fitted
// values along with the forecasted, upper and lower values
func LineForecaster(column string, x []string, actual, fitted, forecast, lower, upper []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Forecast Fit " + column,
			},
		),
	)

	line.SetXAxis(x).
		AddSeries("Actual", lineData(actual)).
		AddSeries("Fitted", lineData(fitted)).
		AddSeries("Forecast", lineData(forecast)).
		AddSeries("Upper", lineData(upper)).
		AddSeries("Lower", lineData(lower))
	return line
}

// PlotFit uses the Apache Echarts library to write an html page showing the fit and forecast of
// every column followed by the fit residuals. A nil horizon uses the horizon given at fit, or
// else the next 10% of the training size.
func (f *VECM) PlotFit(w io.Writer, fh *horizon.Horizon) error {
	if f == nil || f.res == nil {
		return ErrUntrainedForecaster
	}
	td := f.TrainingData()
	if td == nil {
		return ErrNoTrainingData
	}
	n := td.Len()

	if fh == nil && f.fh == nil {
		var err error
		if fh, err = horizon.NewRange(max(1, n/10)); err != nil {
			return err
		}
	}

	res, err := f.PredictInterval(fh, DefaultCoverage)
	if err != nil {
		return fmt.Errorf("unable to predict with horizon, %w", err)
	}

	// extend the axis with every period up to the last forecast
	var ahead int
	for _, p := range res.Index {
		step, err := p.Sub(f.cutoff)
		if err != nil {
			return err
		}
		ahead = max(ahead, step)
	}
	x := td.Index.Strings()
	for i := 1; i <= ahead; i++ {
		x = append(x, f.cutoff.Add(i).String())
	}

	fitted, err := f.res.FittedValues()
	if err != nil {
		return err
	}
	resid, err := f.res.Residuals()
	if err != nil {
		return err
	}

	page := components.NewPage()
	residuals := make([][]float64, len(f.columns))
	for c, col := range f.columns {
		actual := nanRow(len(x))
		fit := nanRow(len(x))
		forecast := nanRow(len(x))
		lower := nanRow(len(x))
		upper := nanRow(len(x))
		residuals[c] = nanRow(len(x))

		for i := 0; i < n; i++ {
			actual[i] = td.Y[i][c]
			fit[i] = fitted.At(i, c)
			residuals[c][i] = resid.At(i, c)
		}
		for i, p := range res.Index {
			step, _ := p.Sub(f.cutoff)
			if step < 1 {
				continue
			}
			forecast[n-1+step] = res.Forecast[i][c]
			lower[n-1+step] = res.Lower[i][c]
			upper[n-1+step] = res.Upper[i][c]
		}
		page.AddCharts(LineForecaster(col, x, actual, fit, forecast, lower, upper))
	}
	page.AddCharts(LineTSeries("Forecast Residual", f.columns, x, residuals))

	return page.Render(w)
}
