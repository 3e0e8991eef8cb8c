/*
 * v3_test.go, part of ringpucker.
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("got %d vectors, want 2", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		Te.Errorf("got %g at (1,2), want 6", A.At(1, 2))
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("length not divisible by 3 should be an error")
	}
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3})
	B := Zeros(2)
	B.SomeVecs(A, []int{3, 1})
	if B.At(0, 0) != 3 || B.At(1, 0) != 1 {
		Te.Errorf("wrong vectors extracted:\n%v", B)
	}
	if err := B.SomeVecsSafe(A, []int{0, 1, 2}); err == nil {
		Te.Error("mismatched receiver should be an error")
	}
	if err := B.SomeVecsSafe(A, []int{0, 9}); err == nil {
		Te.Error("out-of-range index should be an error")
	}
}

func TestCross(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 0) != 0 || z.At(0, 1) != 0 || z.At(0, 2) != 1 {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	z.Cross(y, x)
	if z.At(0, 2) != -1 {
		Te.Errorf("y cross x should be -z, got %v", z)
	}
	if x.Dot(y) != 0 {
		Te.Error("x dot y should be 0")
	}
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v, _ := NewMatrix([]float64{10, 20, 30})
	B := Zeros(2)
	B.AddVec(A, v)
	if B.At(0, 0) != 11 || B.At(1, 2) != 36 {
		Te.Errorf("AddVec wrong:\n%v", B)
	}
	B.SubVec(B, v)
	if !matEq(A, B) {
		Te.Errorf("SubVec did not undo AddVec:\n%v\nvs\n%v", A, B)
	}
}

func TestMean(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 4, 6})
	m := A.Mean()
	if m.At(0, 0) != 1 || m.At(0, 1) != 2 || m.At(0, 2) != 3 {
		Te.Errorf("wrong centroid: %v", m)
	}
}

func TestNormUnit(Te *testing.T) {
	a, _ := NewMatrix([]float64{3, 4, 0})
	if math.Abs(a.Norm()-5) > 1e-12 {
		Te.Errorf("norm of (3,4,0) should be 5, got %g", a.Norm())
	}
	u := Zeros(1)
	u.Unit(a)
	if math.Abs(u.Norm()-1) > 1e-12 {
		Te.Errorf("unit vector norm should be 1, got %g", u.Norm())
	}
}

func TestVecView(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	if v.At(0, 1) != 5 {
		Te.Errorf("got %g, want 5", v.At(0, 1))
	}
	v.Set(0, 1, 50)
	if A.At(1, 1) != 50 {
		Te.Error("VecView should be a view, not a copy")
	}
	c := A.Copy()
	c.Set(0, 0, 100)
	if A.At(0, 0) == 100 {
		Te.Error("Copy should be independent of the original")
	}
}

func matEq(A, B *Matrix) bool {
	if A.NVecs() != B.NVecs() {
		return false
	}
	for i := 0; i < A.NVecs(); i++ {
		for k := 0; k < 3; k++ {
			if math.Abs(A.At(i, k)-B.At(i, k)) > 1e-12 {
				return false
			}
		}
	}
	return true
}
