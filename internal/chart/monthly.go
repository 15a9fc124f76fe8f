package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ademuri/streaming-history/internal/analysis"
)

const (
	FileName = "playtime_per_month.png"

	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// MonthlyBarChart renders minutes played per month as a bar chart. The image
// format follows the extension of path.
func MonthlyBarChart(monthly map[string]float64, path string) error {
	p, err := newMonthlyPlot(monthly)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", path, err)
	}
	return nil
}

func newMonthlyPlot(monthly map[string]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Total Minutes Played Per Month"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Minutes Played"

	months := analysis.SortedMonths(monthly)
	if len(months) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(months))
	for i, m := range months {
		values[i] = monthly[m]
	}

	// Leave a gap between bars regardless of how many months there are.
	barWidth := vg.Length(math.Max(1, float64(width)*0.7/float64(len(months))))
	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = 0
	p.Add(bars)

	p.NominalX(months...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}
