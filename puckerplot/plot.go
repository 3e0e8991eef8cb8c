/*
 * plot.go, part of ringpucker.
 *
 * Copyright 2026 Mauricio Poblete <mpoblete{at}gmailDOTcom>
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

//Package puckerplot draws the standard visualizations of ring puckering
//analyses: the 2D theta/phi map colored by amplitude, and the 3D puckering
//sphere as an orthographic projection. Output format follows the file
//extension (.png, .pdf, .svg, ...).
package puckerplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	pucker "github.com/mpoblete/ringpucker"
)

// Map2D draws the puckering map of rows: azimuthal angle phi (degrees) on
// the x axis, polar angle theta (degrees) on the y axis, each point colored
// by its amplitude q on a diverging palette. Rows with NaN parameters are
// skipped. The plot is written to file.
func Map2D(rows []*pucker.Result, title, file string) error {
	pts := make(plotter.XYs, 0, len(rows))
	qs := make([]float64, 0, len(rows))
	qmin, qmax := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if r.Failed() {
			continue
		}
		pts = append(pts, plotter.XY{X: r.Phi, Y: r.Theta * pucker.Rad2Deg})
		qs = append(qs, r.Q)
		qmin = math.Min(qmin, r.Q)
		qmax = math.Max(qmax, r.Q)
	}
	if len(pts) == 0 {
		return fmt.Errorf("puckerplot: no measured rows to plot")
	}
	if qmax == qmin { //degenerate color range
		qmax = qmin + 1e-12
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(qmin)
	cm.SetMax(qmax)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s\nq: %.3f - %.3f Å, %d geometries", title, qmin, qmax, len(pts))
	p.X.Label.Text = "phi (degrees)"
	p.Y.Label.Text = "theta (degrees)"
	p.X.Min, p.X.Max = 0, 360
	p.Y.Min, p.Y.Max = 0, 180
	p.Add(plotter.NewGrid())
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(qs[i])
		if err != nil {
			c = color.Black
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
	}
	p.Add(s)
	return p.Save(18*vg.Centimeter, 12*vg.Centimeter, file)
}
