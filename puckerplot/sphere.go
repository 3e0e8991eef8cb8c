/*
 * sphere.go, part of ringpucker.
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

package puckerplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	pucker "github.com/mpoblete/ringpucker"
)

// Viewing direction of the sphere projection, in radians.
const (
	sphereAzimuth   = 30 * pucker.Deg2Rad
	sphereElevation = 25 * pucker.Deg2Rad
)

// Sphere draws one or more row sets on the Cremer-Pople puckering sphere:
// each (q, theta, phi) triple becomes a cartesian point, orthographically
// projected onto the page over a wireframe reference sphere whose radius is
// 1.1 times the largest amplitude. labels names each set in the legend and
// must match sets in length. The plot is written to file.
func Sphere(sets [][]*pucker.Result, labels []string, title, file string) error {
	if len(sets) == 0 || len(sets) != len(labels) {
		return fmt.Errorf("puckerplot: need as many labels as row sets")
	}
	var qmax float64
	type projected struct {
		pts   plotter.XYs
		label string
	}
	var projs []projected
	for i, rows := range sets {
		pts := make(plotter.XYs, 0, len(rows))
		for _, r := range rows {
			if r.Failed() {
				continue
			}
			x, y, z := sphericalToCartesian(r.Q, r.Theta, r.Phi*pucker.Deg2Rad)
			u, v := project(x, y, z)
			pts = append(pts, plotter.XY{X: u, Y: v})
			qmax = math.Max(qmax, r.Q)
		}
		projs = append(projs, projected{pts, labels[i]})
	}
	if qmax == 0 {
		return fmt.Errorf("puckerplot: no measured rows to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (Å)"
	p.Y.Label.Text = "z (Å)"
	radius := qmax * 1.1
	for _, line := range wireframe(radius) {
		l, err := plotter.NewLine(line)
		if err != nil {
			return err
		}
		l.Color = color.Gray{Y: 200}
		l.Width = vg.Points(0.5)
		p.Add(l)
	}
	for i, pr := range projs {
		if len(pr.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pr.pts)
		if err != nil {
			return err
		}
		s.GlyphStyle = draw.GlyphStyle{Color: plotutil.Color(i), Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		p.Add(s)
		p.Legend.Add(pr.label, s)
	}
	p.Legend.Top = true
	p.X.Min, p.X.Max = -radius*1.2, radius*1.2
	p.Y.Min, p.Y.Max = -radius*1.2, radius*1.2
	return p.Save(15*vg.Centimeter, 15*vg.Centimeter, file)
}

// sphericalToCartesian converts puckering spherical coordinates (theta and
// phi in radians) to cartesian.
func sphericalToCartesian(q, theta, phi float64) (x, y, z float64) {
	x = q * math.Sin(theta) * math.Cos(phi)
	y = q * math.Sin(theta) * math.Sin(phi)
	z = q * math.Cos(theta)
	return x, y, z
}

// project maps a 3D point to the page by orthographic projection from the
// fixed viewing direction.
func project(x, y, z float64) (u, v float64) {
	sa, ca := math.Sin(sphereAzimuth), math.Cos(sphereAzimuth)
	se, ce := math.Sin(sphereElevation), math.Cos(sphereElevation)
	u = -x*sa + y*ca
	v = -(x*ca+y*sa)*se + z*ce
	return u, v
}

// wireframe returns the projected meridians and parallels of the reference
// sphere of the given radius.
func wireframe(radius float64) []plotter.XYs {
	var lines []plotter.XYs
	//meridians every 30 degrees of phi
	for phi := 0.0; phi < 360; phi += 30 {
		line := make(plotter.XYs, 0, 37)
		for theta := 0.0; theta <= 180; theta += 5 {
			x, y, z := sphericalToCartesian(radius, theta*pucker.Deg2Rad, phi*pucker.Deg2Rad)
			u, v := project(x, y, z)
			line = append(line, plotter.XY{X: u, Y: v})
		}
		lines = append(lines, line)
	}
	//parallels every 30 degrees of theta
	for theta := 30.0; theta < 180; theta += 30 {
		line := make(plotter.XYs, 0, 73)
		for phi := 0.0; phi <= 360; phi += 5 {
			x, y, z := sphericalToCartesian(radius, theta*pucker.Deg2Rad, phi*pucker.Deg2Rad)
			u, v := project(x, y, z)
			line = append(line, plotter.XY{X: u, Y: v})
		}
		lines = append(lines, line)
	}
	return lines
}
