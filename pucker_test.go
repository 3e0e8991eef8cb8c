/*
 * pucker_test.go, part of ringpucker.
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

package pucker

import (
	"fmt"
	"math"
	"testing"

	v3 "github.com/mpoblete/ringpucker/v3"
)

// hexagon returns a regular hexagon of the given radius in the xy plane,
// with the per-atom z displacements in z (nil for a flat ring).
func hexagon(radius float64, z []float64) *v3.Matrix {
	data := make([]float64, 0, 18)
	for i := 0; i < 6; i++ {
		a := math.Pi * float64(i) / 3
		zi := 0.0
		if z != nil {
			zi = z[i]
		}
		data = append(data, radius*math.Cos(a), radius*math.Sin(a), zi)
	}
	m, _ := v3.NewMatrix(data)
	return m
}

// chairZ is the alternating displacement pattern of an ideal chair.
func chairZ(z0 float64) []float64 {
	z := make([]float64, 6)
	for i := range z {
		z[i] = z0
		if i%2 == 1 {
			z[i] = -z0
		}
	}
	return z
}

// modeZ is a pure m=2 displacement pattern with amplitude q2 and phase
// phi2 (radians): z_i = sqrt(1/3) q2 cos(phi2 + 4 pi i/6).
func modeZ(q2, phi2 float64) []float64 {
	z := make([]float64, 6)
	for i := range z {
		z[i] = math.Sqrt(1.0/3.0) * q2 * math.Cos(phi2+4*math.Pi*float64(i)/6)
	}
	return z
}

func TestPlanarHexagon(Te *testing.T) {
	ring := hexagon(1.4, nil)
	p, err := CremerPople(ring)
	if err != nil {
		Te.Fatal(err)
	}
	if p.Amplitude() > 1e-10 {
		Te.Errorf("planar hexagon should have Q~0, got %g", p.Amplitude())
	}
	s, err := p.Spherical()
	if err != nil {
		Te.Fatal(err)
	}
	if conf := Classify(s.Q, s.Theta, s.Phi); conf != Planar {
		Te.Errorf("planar hexagon classified as %s", conf)
	}
}

func TestIdealChair(Te *testing.T) {
	const z0 = 0.25
	ring := hexagon(1.45, chairZ(z0))
	p, err := CremerPople(ring)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := p.Spherical()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("chair", s.Q, s.Theta, s.Phi)
	wantQ := math.Sqrt(6) * z0
	if math.Abs(s.Q-wantQ) > 1e-10 {
		Te.Errorf("chair amplitude: got %g, want %g", s.Q, wantQ)
	}
	//theta must sit on a pole; which one depends on the normal convention
	if math.Abs(s.Theta) > 1e-8 && math.Abs(s.Theta-180) > 1e-8 {
		Te.Errorf("chair theta should be 0 or 180, got %g", s.Theta)
	}
	if conf := Classify(s.Q, s.Theta, s.Phi); conf != Chair {
		Te.Errorf("ideal chair classified as %s", conf)
	}
	//the mirrored chair must land on the other pole
	mirror := hexagon(1.45, chairZ(-z0))
	p2, err := CremerPople(mirror)
	if err != nil {
		Te.Fatal(err)
	}
	s2, _ := p2.Spherical()
	if math.Abs(s.Theta+s2.Theta-180) > 1e-8 {
		Te.Errorf("mirrored chairs should be on opposite poles: %g and %g", s.Theta, s2.Theta)
	}
}

func TestIdealBoatAndTwist(Te *testing.T) {
	boat := hexagon(1.45, modeZ(0.6, 0))
	p, err := CremerPople(boat)
	if err != nil {
		Te.Fatal(err)
	}
	s, _ := p.Spherical()
	fmt.Println("boat", s.Q, s.Theta, s.Phi)
	if math.Abs(s.Theta-90) > 1e-8 {
		Te.Errorf("pure m=2 mode should have theta=90, got %g", s.Theta)
	}
	if math.Abs(s.Q-0.6) > 1e-10 {
		Te.Errorf("boat amplitude: got %g, want 0.6", s.Q)
	}
	if conf := Classify(s.Q, s.Theta, s.Phi); conf != Boat {
		Te.Errorf("phase-0 m=2 mode classified as %s", conf)
	}
	twist := hexagon(1.45, modeZ(0.6, 30*Deg2Rad))
	p2, err := CremerPople(twist)
	if err != nil {
		Te.Fatal(err)
	}
	s2, _ := p2.Spherical()
	fmt.Println("twist", s2.Q, s2.Theta, s2.Phi)
	if conf := Classify(s2.Q, s2.Theta, s2.Phi); conf != TwistBoat {
		Te.Errorf("phase-30 m=2 mode classified as %s", conf)
	}
	//the two phases must be 30 degrees apart on the pseudorotation circle
	dphi := math.Mod(math.Abs(s2.Phi-s.Phi), 360)
	if math.Abs(dphi-30) > 1e-8 && math.Abs(dphi-330) > 1e-8 {
		Te.Errorf("boat and twist phases should differ by 30 degrees, got %g", dphi)
	}
}

func TestAmplitudeNonNegative(Te *testing.T) {
	rings := []*v3.Matrix{
		hexagon(1.4, nil),
		hexagon(1.45, chairZ(0.25)),
		hexagon(1.45, chairZ(-0.3)),
		hexagon(1.45, modeZ(0.5, 1.234)),
		hexagon(1.5, []float64{0.1, -0.2, 0.15, -0.05, 0.2, -0.1}),
	}
	for i, ring := range rings {
		p, err := CremerPople(ring)
		if err != nil {
			Te.Fatal(err)
		}
		s, err := p.Spherical()
		if err != nil {
			Te.Fatal(err)
		}
		if s.Q < 0 {
			Te.Errorf("ring %d: negative total amplitude %g", i, s.Q)
		}
	}
}

func TestTranslationInvariance(Te *testing.T) {
	ring := hexagon(1.45, []float64{0.1, -0.2, 0.15, -0.05, 0.2, -0.1})
	p1, err := CremerPople(ring)
	if err != nil {
		Te.Fatal(err)
	}
	offset, _ := v3.NewMatrix([]float64{13.5, -7.25, 101.0})
	moved := v3.Zeros(6)
	moved.AddVec(ring, offset)
	p2, err := CremerPople(moved)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(p1.Q2()-p2.Q2()) > 1e-9 || math.Abs(p1.Q3()-p2.Q3()) > 1e-9 {
		Te.Errorf("amplitudes changed under translation: (%g,%g) vs (%g,%g)", p1.Q2(), p1.Q3(), p2.Q2(), p2.Q3())
	}
	if math.Abs(p1.Phi2()-p2.Phi2()) > 1e-9 {
		Te.Errorf("phase changed under translation: %g vs %g", p1.Phi2(), p2.Phi2())
	}
}

func TestDeterminism(Te *testing.T) {
	ring := hexagon(1.45, []float64{0.1, -0.2, 0.15, -0.05, 0.2, -0.1})
	p1, err := CremerPople(ring)
	if err != nil {
		Te.Fatal(err)
	}
	p2, err := CremerPople(ring.Copy())
	if err != nil {
		Te.Fatal(err)
	}
	if p1.Q2() != p2.Q2() || p1.Q3() != p2.Q3() || p1.Phi2() != p2.Phi2() || p1.Phi3() != p2.Phi3() {
		Te.Error("identical input produced different puckering parameters")
	}
}

func TestDegenerateRing(Te *testing.T) {
	data := make([]float64, 0, 18)
	for i := 0; i < 6; i++ {
		data = append(data, float64(i), 0, 0)
	}
	line, _ := v3.NewMatrix(data)
	_, err := CremerPople(line)
	if err == nil {
		Te.Fatal("collinear ring should not be measurable")
	}
	if _, ok := err.(DegenerateRingError); !ok {
		Te.Errorf("collinear ring should give DegenerateRingError, got %T: %v", err, err)
	}
}

func TestTooFewAtoms(Te *testing.T) {
	small, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0})
	_, err := CremerPople(small)
	if err == nil {
		Te.Fatal("4-atom ring should not be measurable")
	}
	if _, ok := err.(ShapeError); !ok {
		Te.Errorf("4-atom ring should give ShapeError, got %T: %v", err, err)
	}
}

func TestFiveRing(Te *testing.T) {
	//a slightly puckered regular pentagon; only the m=2 mode exists
	data := make([]float64, 0, 15)
	zs := []float64{0.1, -0.05, -0.02, -0.02, -0.05}
	for i := 0; i < 5; i++ {
		a := 2 * math.Pi * float64(i) / 5
		data = append(data, 1.2*math.Cos(a), 1.2*math.Sin(a), zs[i])
	}
	ring, _ := v3.NewMatrix(data)
	p, err := CremerPople(ring)
	if err != nil {
		Te.Fatal(err)
	}
	if p.N() != 5 {
		Te.Errorf("wrong ring size: %d", p.N())
	}
	if p.Qm(2) <= 0 {
		Te.Errorf("puckered 5-ring should have q2 > 0, got %g", p.Qm(2))
	}
	if _, err := p.Spherical(); err == nil {
		Te.Error("spherical representation of a 5-ring should be an error")
	}
}
