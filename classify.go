/*
 * classify.go, part of ringpucker.
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

import "math"

// Conformation is a named conformation class of a 6-membered ring, assigned
// from the position of the geometry on the puckering sphere.
type Conformation string

// The conformation classes for 6-membered rings. Planar is assigned when the
// total puckering amplitude is too small for the angular position to mean
// anything. Unclassified is a defensive fallback for inputs that carry NaN
// angles (e.g. rows from failed geometries); classification itself is total
// over the real angular domain and never returns it otherwise.
const (
	Chair        Conformation = "chair"
	HalfChair    Conformation = "half-chair"
	Envelope     Conformation = "envelope"
	Boat         Conformation = "boat"
	TwistBoat    Conformation = "twist-boat"
	Planar       Conformation = "planar"
	Unclassified Conformation = "unclassified"
)

// DefaultPlanarCutoff is the total amplitude, in Å, under which a ring is
// called planar. Aromatic rings in room-temperature MD typically fluctuate
// well under this value.
const DefaultPlanarCutoff = 0.1

// Angular sector boundaries, in degrees. Chair caps cover theta within
// chairCap of either pole; the boat/twist-boat belt covers theta within
// beltHalfWidth of the equator; the two bands in between split into
// envelope/half-chair phi sectors. All sectors are half-open with an
// inclusive lower bound, so every angle maps to exactly one class.
const (
	chairCap      = 45.0
	beltHalfWidth = 22.5
	phiSector     = 30.0
)

// Classify assigns a conformation class to a 6-ring geometry from its total
// puckering amplitude q (Å) and the spherical puckering angles, in degrees.
// It is a total function: any real (theta, phi) pair yields exactly one
// class, with ties on sector boundaries resolved toward the sector with the
// higher lower bound (inclusive lower bounds).
func Classify(q, thetaDeg, phiDeg float64) Conformation {
	c, _ := ClassifySector(q, thetaDeg, phiDeg)
	return c
}

// ClassifySector is Classify, but also returns the index of the sub-variant
// sector within the class: 0-1 for the two chairs (north, south), 0-5 for
// boats and twist-boats, and 0-11 for envelopes and half-chairs (northern
// sectors first). The index is 0 for planar and unclassified.
func ClassifySector(q, thetaDeg, phiDeg float64) (Conformation, int) {
	return classifySector(q, thetaDeg, phiDeg, DefaultPlanarCutoff)
}

func classifySector(q, thetaDeg, phiDeg, planarCutoff float64) (Conformation, int) {
	if math.IsNaN(q) || math.IsNaN(thetaDeg) || math.IsNaN(phiDeg) {
		return Unclassified, 0
	}
	theta, phi := normalizeAngles(thetaDeg, phiDeg)
	if q < planarCutoff {
		return Planar, 0
	}
	//pole caps
	if theta < chairCap {
		return Chair, 0
	}
	if theta >= 180-chairCap {
		return Chair, 1
	}
	//s is the 30-degree phi sector, shifted so that even sectors are
	//centered on multiples of 60 degrees.
	s := int(math.Floor(math.Mod(phi+phiSector/2, 360) / phiSector))
	aligned := s%2 == 0
	variant := s / 2 //which of the six 60-degree positions
	//equatorial belt
	if theta >= 90-beltHalfWidth && theta < 90+beltHalfWidth {
		if aligned {
			return Boat, variant
		}
		return TwistBoat, variant
	}
	//remaining bands between cap and belt
	if theta >= 90+beltHalfWidth { //southern band
		variant += 6
	}
	if aligned {
		return Envelope, variant
	}
	return HalfChair, variant
}

// normalizeAngles reduces theta into [0,180] and phi into [0,360). A theta
// beyond 180 is reflected through the pole, which rotates phi by 180.
func normalizeAngles(theta, phi float64) (float64, float64) {
	theta = math.Mod(theta, 360)
	if theta < 0 {
		theta += 360
	}
	if theta > 180 {
		theta = 360 - theta
		phi += 180
	}
	phi = math.Mod(phi, 360)
	if phi < 0 {
		phi += 360
	}
	return theta, phi
}
