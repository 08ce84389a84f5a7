package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/agri-dashboard-service/internal/charts"
)

// ErrEmptyChart is returned when a chart has no data to draw.
var ErrEmptyChart = errors.New("chart has no data")

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

// RenderTimeSeries draws one line per country and writes the PNG to w.
func RenderTimeSeries(w io.Writer, c charts.TimeSeriesChart, title string) error {
	if c.Empty || len(c.Lines) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.Message)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = c.Unit
	p.Add(plotter.NewGrid())

	for i, l := range c.Lines {
		pts := make(plotter.XYs, len(l.Points))
		for j, yv := range l.Points {
			pts[j].X = float64(yv.Year)
			pts[j].Y = yv.Value
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("line %s: %w", l.CountryCode, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(l.Country, line)
	}
	p.Legend.Top = true

	return save(w, p)
}

// RenderBar draws the ranked countries as bars and writes the PNG to w.
func RenderBar(w io.Writer, c charts.BarChart, title string) error {
	if c.Empty || len(c.Bars) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.Message)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = c.Unit

	values := make(plotter.Values, len(c.Bars))
	labels := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		values[i] = b.Value
		labels[i] = b.CountryCode
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	return save(w, p)
}

func save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
