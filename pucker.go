/*
 * pucker.go, part of ringpucker.
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

//Measurement of ring puckering for N-membered rings, after
//Cremer and Pople, J Am Chem Soc, 97, 1354, (1975).

package pucker

import (
	"math"

	v3 "github.com/mpoblete/ringpucker/v3"
)

// degenTol is the smallest acceptable norm for the cross product that
// defines the mean-plane normal. Below it the ring atoms are taken to be
// collinear or coincident.
const degenTol = 1e-10

// Pucker contains the Cremer-Pople puckering parameters of one ring
// geometry. For a ring of N atoms there are puckering modes m=2..ceil(N/2)-1,
// each with an amplitude and a phase, plus, for even N, a single signed
// amplitude for the m=N/2 mode.
type Pucker struct {
	n     int
	qm    []float64 //amplitudes, Å, indexed from m=2
	phim  []float64 //phases, radians in [0,2pi), same indexing
	qhalf float64   //signed m=N/2 amplitude, only meaningful for even N
}

// N returns the number of atoms in the ring measured.
func (p *Pucker) N() int { return p.n }

// Qm returns the puckering amplitude for mode m, in Å. For even N, Qm(N/2)
// returns the absolute value of the signed N/2 amplitude. It panics if m is
// not a valid mode for the ring size.
func (p *Pucker) Qm(m int) float64 {
	if p.n%2 == 0 && m == p.n/2 {
		return math.Abs(p.qhalf)
	}
	return p.qm[p.mustMode(m)]
}

// Phim returns the puckering phase for mode m, in degrees in [0,360). For
// even N the phase of the N/2 mode is 0 or 180 by definition, following the
// sign of its amplitude.
func (p *Pucker) Phim(m int) float64 {
	if p.n%2 == 0 && m == p.n/2 {
		if p.qhalf < 0 {
			return 180
		}
		return 0
	}
	return p.phim[p.mustMode(m)] * Rad2Deg
}

func (p *Pucker) mustMode(m int) int {
	if m < 2 || m-2 >= len(p.qm) {
		panic(ErrNoSuchMode)
	}
	return m - 2
}

// Q2, Q3, Phi2 and Phi3 are the conventional accessors for 6-membered rings.
// Q3 is signed: its sign selects between the two chair poles. Phi2 and Phi3
// are in degrees.
func (p *Pucker) Q2() float64 { return p.qm[0] }

// Q3 returns the signed amplitude of the m=3 mode of a 6-ring.
func (p *Pucker) Q3() float64 { return p.qhalf }

// Phi2 returns the phase of the m=2 mode, in degrees in [0,360).
func (p *Pucker) Phi2() float64 { return p.phim[0] * Rad2Deg }

// Phi3 returns the phase of the m=3 mode of a 6-ring: 0 or 180 degrees.
func (p *Pucker) Phi3() float64 { return p.Phim(3) }

// Amplitude returns the total puckering amplitude Q, in Å: the euclidean
// norm of all mode amplitudes. It is always >= 0.
func (p *Pucker) Amplitude() float64 {
	var sum float64
	for _, q := range p.qm {
		sum += q * q
	}
	sum += p.qhalf * p.qhalf
	return math.Sqrt(sum)
}

// Spherical contains the puckering parameters of a 6-membered ring in the
// spherical-polar representation: the total amplitude Q (Å), the polar angle
// Theta in [0,180] and the azimuthal angle Phi in [0,360), both in degrees.
// Theta 0 and 180 are the two chair forms; the equator holds the
// boat/twist-boat pseudorotation cycle.
type Spherical struct {
	Q     float64
	Theta float64
	Phi   float64
}

// Spherical converts the puckering parameters of a 6-membered ring to the
// (Q, theta, phi) representation. It returns a ShapeError for any other ring
// size, for which the spherical representation is not defined.
func (p *Pucker) Spherical() (*Spherical, error) {
	if p.n != 6 {
		return nil, shapeErrorf("spherical puckering representation needs a 6-membered ring, got %d atoms", p.n)
	}
	q2 := p.qm[0]
	q3 := p.qhalf
	s := new(Spherical)
	s.Q = math.Sqrt(q2*q2 + q3*q3)
	//q2 >= 0 by construction, so theta lands in [0,180]
	s.Theta = math.Atan2(q2, q3) * Rad2Deg
	s.Phi = p.phim[0] * Rad2Deg
	if s.Phi >= 360 {
		s.Phi -= 360
	}
	return s, nil
}

// CremerPople computes the puckering parameters of the ring whose atom
// positions are the rows of ring, which must be given in cyclic bond order
// (atom i bonded to atom i+1 mod N). At least 5 atoms are required. The
// result does not depend on the position or orientation of the ring as a
// whole, and the sign convention is fixed by the atom order alone, so
// identical input always produces identical output.
//
// It returns a ShapeError if the ring has fewer than 5 atoms, and a
// DegenerateRingError if the atoms are collinear or coincident so that no
// mean plane can be built.
func CremerPople(ring *v3.Matrix) (*Pucker, error) {
	if ring == nil {
		return nil, shapeErrorf("nil ring coordinates")
	}
	n := ring.NVecs()
	if n < 5 {
		return nil, shapeErrorf("a ring needs at least 5 atoms, got %d", n)
	}
	z, err := Displacements(ring)
	if err != nil {
		return nil, errDecorate(err, "CremerPople")
	}
	N := float64(n)
	p := &Pucker{n: n}
	//modes m = 2 .. ceil(N/2)-1
	last := (n+1)/2 - 1
	for m := 2; m <= last; m++ {
		var cs, ss float64
		for i, zi := range z {
			arg := 2 * math.Pi * float64(m) * float64(i) / N
			cs += zi * math.Cos(arg)
			ss += zi * math.Sin(arg)
		}
		cs *= math.Sqrt(2 / N)
		ss *= -math.Sqrt(2 / N)
		p.qm = append(p.qm, math.Hypot(cs, ss))
		phi := math.Atan2(ss, cs)
		if phi < 0 {
			phi += 2 * math.Pi
		}
		p.phim = append(p.phim, phi)
	}
	if n%2 == 0 {
		var sum float64
		sign := 1.0
		for _, zi := range z {
			sum += sign * zi
			sign = -sign
		}
		p.qhalf = sum / math.Sqrt(N)
	}
	return p, nil
}

// Displacements returns the perpendicular displacement of each ring atom
// from the Cremer-Pople mean plane of the ring, in the input order. The mean
// plane passes through the ring centroid with its normal along R'xR'', where
// R' and R'' are the sin- and cos-weighted sums of the centered positions.
// That construction, not a least-squares fit, is what makes the z sum rules
// of the CP paper hold exactly.
func Displacements(ring *v3.Matrix) ([]float64, error) {
	n := ring.NVecs()
	if n < 3 {
		return nil, shapeErrorf("need at least 3 atoms to define a plane, got %d", n)
	}
	N := float64(n)
	centered := v3.Zeros(n)
	centered.SubVec(ring, ring.Mean())
	rp := v3.Zeros(1)
	rpp := v3.Zeros(1)
	tmp := v3.Zeros(1)
	for i := 0; i < n; i++ {
		ri := centered.VecView(i)
		tmp.Scale(math.Sin(2*math.Pi*float64(i)/N), ri)
		rp.Add(rp.Dense, tmp.Dense)
		tmp.Scale(math.Cos(2*math.Pi*float64(i)/N), ri)
		rpp.Add(rpp.Dense, tmp.Dense)
	}
	normal := v3.Zeros(1)
	normal.Cross(rp, rpp)
	if normal.Norm() < degenTol {
		return nil, degenerateErrorf("degenerate ring: atoms collinear or coincident, cannot build mean plane")
	}
	normal.Unit(normal)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = centered.VecView(i).Dot(normal)
	}
	return z, nil
}

// ErrNoSuchMode is the panic thrown when a puckering mode that does not
// exist for the measured ring size is requested.
const ErrNoSuchMode = v3.PanicMsg("ringpucker: no such puckering mode for this ring size")

// Unit conversion constants.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)
