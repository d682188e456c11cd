// Package chart draws the analytics series as PNG line charts.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/phuslu/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// DateFormat labels the x axis ticks.
const DateFormat = "2006-01-02"

// Named is one line of a chart. Values align with Request.Dates; NaN
// entries leave a gap.
type Named struct {
	Name   string
	Values []float64
}

// Request describes a single chart.
type Request struct {
	Title  string
	XLabel string
	YLabel string
	Dates  []time.Time
	Series []Named
	Width  vg.Length
	Height vg.Length
}

// Segments splits values into runs of consecutive defined points.
func Segments(dates []time.Time, values []float64) []plotter.XYs {
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	n := min(len(dates), len(values))
	for i := 0; i < n; i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Render draws req and saves it to path; the extension selects the format.
func Render(path string, req Request) error {
	p := plot.New()
	p.Title.Text = req.Title
	p.X.Label.Text = req.XLabel
	p.Y.Label.Text = req.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: DateFormat}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, s := range req.Series {
		c := plotutil.Color(i)
		segs := Segments(req.Dates, s.Values)
		for j, seg := range segs {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("%s: series %q: %w", req.Title, s.Name, err)
			}
			line.Color = c
			line.Width = vg.Points(1.2)
			p.Add(line)
			if j == 0 && len(req.Series) > 1 {
				p.Legend.Add(s.Name, line)
			}
		}
		if len(segs) == 0 {
			log.Debug().Str("chart", req.Title).Str("series", s.Name).Msg("series has no defined points")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := p.Save(req.Width, req.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

