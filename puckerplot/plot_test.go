/*
 * plot_test.go, part of ringpucker.
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
	"math"
	"os"
	"path/filepath"
	"testing"

	pucker "github.com/mpoblete/ringpucker"
)

func plotRows() []*pucker.Result {
	return []*pucker.Result{
		{Idx: 0, Q: 0.61, Theta: 0.05, Phi: 12.5, Conf: pucker.Chair, Cluster: -1},
		{Idx: 1, Q: 0.58, Theta: math.Pi / 2, Phi: 61.2, Conf: pucker.Boat, Cluster: -1},
		{Idx: 2, Q: math.NaN(), Theta: math.NaN(), Phi: math.NaN(), Conf: pucker.Unclassified, Cluster: -1},
		{Idx: 3, Q: 0.55, Theta: 2.8, Phi: 300.0, Conf: pucker.Chair, Cluster: -1},
	}
}

func checkWritten(Te *testing.T, path string) {
	fi, err := os.Stat(path)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Errorf("%s is empty", path)
	}
}

func TestMap2D(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "map.png")
	if err := Map2D(plotRows(), "test map", out); err != nil {
		Te.Fatal(err)
	}
	checkWritten(Te, out)
}

func TestMap2DNoData(Te *testing.T) {
	nan := math.NaN()
	rows := []*pucker.Result{{Q: nan, Theta: nan, Phi: nan}}
	if err := Map2D(rows, "empty", filepath.Join(Te.TempDir(), "map.png")); err == nil {
		Te.Error("all-NaN input should be an error")
	}
}

func TestSphere(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "sphere.png")
	sets := [][]*pucker.Result{plotRows(), plotRows()[:2]}
	if err := Sphere(sets, []string{"run A", "run B"}, "test sphere", out); err != nil {
		Te.Fatal(err)
	}
	checkWritten(Te, out)
}

func TestSphereBadArgs(Te *testing.T) {
	out := filepath.Join(Te.TempDir(), "sphere.png")
	if err := Sphere(nil, nil, "t", out); err == nil {
		Te.Error("no sets should be an error")
	}
	if err := Sphere([][]*pucker.Result{plotRows()}, []string{"a", "b"}, "t", out); err == nil {
		Te.Error("mismatched labels should be an error")
	}
}
