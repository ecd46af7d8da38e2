/*
 * plot.go, part of dgeom.
 *
 * Copyright 2024 The owl dgeom authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dgplot

import (
	"image/color"
	"math"

	"github.com/eppic-team/owl-sub005/smooth"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the width and height of the saved plots.
var Size = 12 * vg.Centimeter

// boundGrid shows one of the bound matrices of a smooth.Dense as a heat map.
type boundGrid struct {
	d     *smooth.Dense
	upper bool
}

func (g boundGrid) Dims() (c, r int) { return g.d.Size(), g.d.Size() }

func (g boundGrid) Z(c, r int) float64 {
	b, ok := g.d.Get(r, c)
	if !ok {
		return 0
	}
	if g.upper {
		return b.Upper
	}
	return b.Lower
}

func (g boundGrid) X(c int) float64 { return float64(c + 1) }

func (g boundGrid) Y(r int) float64 { return float64(r + 1) }

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

// BoundsHeatMap saves a heat map of the inferred upper bounds in d, or of the
// lower bounds if upper is false, to the file plotname. The image format is
// taken from plotname's extension (png, svg, pdf...).
func BoundsHeatMap(d *smooth.Dense, upper bool, title, plotname string) error {
	if d.Size() < 2 {
		return newError("BoundsHeatMap", "can't plot bounds for %d points", d.Size())
	}
	p := basicPlot(title, "Residue", "Residue")
	h := plotter.NewHeatMap(boundGrid{d: d, upper: upper}, palette.Heat(24, 1))
	p.Add(h)
	p.X.Min, p.X.Max = 0.5, float64(d.Size())+0.5
	p.Y.Min, p.Y.Max = 0.5, float64(d.Size())+0.5
	if err := p.Save(Size, Size, plotname); err != nil {
		return wrapError(err, "BoundsHeatMap")
	}
	return nil
}

// DistanceScatter saves a plot of the inferred bounds in d against the
// distances dist of a model (or of a reference structure) to plotname.
// Every pair of points gives one lower bound (blue) and one upper bound
// (red). Points satisfying their bounds lie below the identity line for
// the lower bounds, and above it for the upper bounds.
func DistanceScatter(dist mat.Symmetric, d *smooth.Dense, title, plotname string) error {
	n := dist.SymmetricDim()
	if n != d.Size() {
		return newError("DistanceScatter", "distances for %d points and bounds for %d", n, d.Size())
	}
	if n < 2 {
		return newError("DistanceScatter", "can't plot distances for %d points", n)
	}
	lower := make(plotter.XYs, 0, n*(n-1)/2)
	upper := make(plotter.XYs, 0, n*(n-1)/2)
	var max float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			b, _ := d.Get(i, j)
			x := dist.At(i, j)
			lower = append(lower, plotter.XY{X: x, Y: b.Lower})
			upper = append(upper, plotter.XY{X: x, Y: b.Upper})
			max = math.Max(max, math.Max(x, b.Upper))
		}
	}
	p := basicPlot(title, "Distance (A)", "Bound (A)")
	p.Add(plotter.NewGrid())
	for k, xys := range []plotter.XYs{lower, upper} {
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return wrapError(err, "DistanceScatter")
		}
		s.GlyphStyle.Radius = vg.Points(1.5)
		if k == 0 {
			s.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
			p.Legend.Add("lower", s)
		} else {
			s.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
			p.Legend.Add("upper", s)
		}
		p.Add(s)
	}
	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: max, Y: max}})
	if err != nil {
		return wrapError(err, "DistanceScatter")
	}
	diag.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)
	p.Legend.Top = true
	p.Legend.Left = true
	if err := p.Save(Size, Size, plotname); err != nil {
		return wrapError(err, "DistanceScatter")
	}
	return nil
}

// Series is a named set of mean scores, with their standard errors, at
// increasing numbers of contacts.
type Series struct {
	Name   string
	K      []int
	Mean   []float64
	StdErr []float64
}

type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (e errPoints) Len() int { return len(e.XYs) }

// ErrorCurves saves a plot of the mean error scores (and their standard
// errors, as error bars) of random contact subsets against the number of
// contacts in the subsets, one curve per series, to plotname.
func ErrorCurves(series []Series, title, plotname string) error {
	if len(series) == 0 {
		return newError("ErrorCurves", "no series given")
	}
	p := basicPlot(title, "Contacts", "Error")
	p.Add(plotter.NewGrid())
	for key, s := range series {
		if len(s.K) != len(s.Mean) || len(s.K) != len(s.StdErr) || len(s.K) == 0 {
			return newError("ErrorCurves", "series %q has %d points, %d means and %d standard errors", s.Name, len(s.K), len(s.Mean), len(s.StdErr))
		}
		pts := errPoints{XYs: make(plotter.XYs, len(s.K)), YErrors: make(plotter.YErrors, len(s.K))}
		for i := range s.K {
			pts.XYs[i] = plotter.XY{X: float64(s.K[i]), Y: s.Mean[i]}
			pts.YErrors[i].Low = s.StdErr[i]
			pts.YErrors[i].High = s.StdErr[i]
		}
		l, sc, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return wrapError(err, "ErrorCurves")
		}
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return wrapError(err, "ErrorCurves")
		}
		r, g, b := colors(key, len(series))
		c := color.RGBA{R: r, G: g, B: b, A: 255}
		l.Color = c
		sc.Color = c
		bars.Color = c
		p.Add(l, sc, bars)
		p.Legend.Add(s.Name, l, sc)
	}
	p.Legend.Top = true
	if err := p.Save(Size, Size, plotname); err != nil {
		return wrapError(err, "ErrorCurves")
	}
	return nil
}

// hsv2RGB takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func hsv2RGB(h, v, s float64) (uint8, uint8, uint8) {
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors spreads steps colors over the hue circle, skipping the yellows,
// which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	h := float64(key)*norm + 20.0
	if h < 55 {
		h -= 20.0
	} else {
		h += 20.0
	}
	return hsv2RGB(h, 1, 1)
}
