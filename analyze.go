/*
 * analyze.go, part of ringpucker.
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
	"math"

	v3 "github.com/mpoblete/ringpucker/v3"
)

// Result is one row of a puckering analysis: the puckering parameters of one
// geometry, plus optional classification and cluster membership. Theta is
// stored in radians and Phi in degrees, matching the persisted table format.
// A geometry that could not be measured (wrong ring shape, degenerate ring)
// carries NaN in Q, Theta and Phi and an Unclassified conformation.
type Result struct {
	Idx     int
	Q       float64
	Theta   float64
	Phi     float64
	Conf    Conformation //empty when classification was not requested
	Cluster int          //-1 when no clustering was run
}

// Failed returns whether the row is the missing-data marker of a geometry
// that could not be measured.
func (r *Result) Failed() bool {
	return math.IsNaN(r.Q)
}

// Options collects the optional settings for Analyze.
type Options struct {
	classify     bool
	planarCutoff float64
}

// DefaultOptions returns the default settings: classification on, with the
// default planar cutoff.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.classify = true
	ret.planarCutoff = DefaultPlanarCutoff
	return ret
}

// Classify sets (if given) and returns whether Analyze assigns conformation
// labels to each row.
func (o *Options) Classify(c ...bool) bool {
	if len(c) > 0 {
		o.classify = c[0]
	}
	return o.classify
}

// PlanarCutoff sets (if given) and returns the total amplitude under which a
// ring is classified as planar, in Å.
func (o *Options) PlanarCutoff(c ...float64) float64 {
	if len(c) > 0 {
		o.planarCutoff = c[0]
	}
	return o.planarCutoff
}

// CheckRing validates a ring specification against a geometry of natoms
// atoms: at least 5 indexes, all unique and within bounds. The order of the
// indexes is the cyclic bond order of the ring and is never rearranged, as
// the Cremer-Pople sums are order-sensitive.
func CheckRing(natoms int, ring []int) error {
	if len(ring) < 5 {
		return shapeErrorf("ring specification needs at least 5 atoms, got %d", len(ring))
	}
	seen := make(map[int]bool, len(ring))
	for _, i := range ring {
		if i < 0 || i >= natoms {
			return shapeErrorf("ring atom index %d out of range for a geometry of %d atoms", i, natoms)
		}
		if seen[i] {
			return shapeErrorf("repeated ring atom index %d", i)
		}
		seen[i] = true
	}
	return nil
}

// Analyze computes the Cremer-Pople spherical puckering parameters of the
// ring formed by the atoms with the given indexes, for every geometry in
// geoms, in order. One Result is produced per geometry: row i always
// corresponds to geometry i, and a geometry that fails to measure (e.g. a
// degenerate ring) yields a NaN-marked row instead of aborting the batch.
// The ring specification itself is validated up front against the first
// geometry; an invalid specification or an empty dataset is an error.
func Analyze(geoms []*v3.Matrix, ring []int, options ...*Options) ([]*Result, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if len(geoms) == 0 {
		return nil, CError{msg: "empty dataset: no geometries to analyze"}
	}
	if err := CheckRing(geoms[0].NVecs(), ring); err != nil {
		return nil, errDecorate(err, "Analyze")
	}
	ringCoords := v3.Zeros(len(ring))
	results := make([]*Result, 0, len(geoms))
	for idx, g := range geoms {
		r := &Result{Idx: idx, Cluster: -1}
		results = append(results, r)
		s, err := sphericalOne(g, ring, ringCoords)
		if err != nil {
			r.Q, r.Theta, r.Phi = math.NaN(), math.NaN(), math.NaN()
			if o.classify {
				r.Conf = Unclassified
			}
			continue
		}
		r.Q = s.Q
		r.Theta = s.Theta * Deg2Rad
		r.Phi = s.Phi
		if o.classify {
			r.Conf, _ = classifySector(s.Q, s.Theta, s.Phi, o.planarCutoff)
		}
	}
	return results, nil
}

// sphericalOne measures a single geometry. buf must have len(ring) vectors;
// it is overwritten.
func sphericalOne(g *v3.Matrix, ring []int, buf *v3.Matrix) (*Spherical, error) {
	if err := buf.SomeVecsSafe(g, ring); err != nil {
		return nil, shapeErrorf("cannot extract ring atoms: %s", err.Error())
	}
	p, err := CremerPople(buf)
	if err != nil {
		return nil, err
	}
	s, err := p.Spherical()
	if err != nil {
		return nil, err
	}
	return s, nil
}
