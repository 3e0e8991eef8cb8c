/*
 * kmeans.go, part of ringpucker.
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

//Package cluster groups geometries by k-means on their flattened cartesian
//coordinates, the same observation layout the puckering pipeline feeds to
//its tabular output. It is deliberately small: just the clustering the
//analysis needs, deterministic for a given seed.
package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	v3 "github.com/mpoblete/ringpucker/v3"
)

// Clusters is the result of a clustering run: one assignment per
// observation, in input order, plus the final centroids.
type Clusters struct {
	Assignments []int
	Centroids   *mat.Dense
	Iterations  int
}

// K returns the number of clusters.
func (c *Clusters) K() int {
	r, _ := c.Centroids.Dims()
	return r
}

// Sizes returns the number of observations in each cluster.
func (c *Clusters) Sizes() []int {
	sizes := make([]int, c.K())
	for _, a := range c.Assignments {
		sizes[a]++
	}
	return sizes
}

// Options collects the optional settings for KMeans.
type Options struct {
	seed    int64
	maxIter int
	tol     float64
}

// DefaultOptions returns the defaults: seed 1, at most 300 iterations,
// centroid movement tolerance 1e-6.
func DefaultOptions() *Options {
	return &Options{seed: 1, maxIter: 300, tol: 1e-6}
}

// Seed sets (if given) and returns the seed of the random source used for
// centroid initialization. Runs with the same data and seed produce the
// same clustering.
func (o *Options) Seed(s ...int64) int64 {
	if len(s) > 0 {
		o.seed = s[0]
	}
	return o.seed
}

// MaxIter sets (if given) and returns the iteration cap.
func (o *Options) MaxIter(m ...int) int {
	if len(m) > 0 {
		o.maxIter = m[0]
	}
	return o.maxIter
}

// Tol sets (if given) and returns the convergence tolerance on centroid
// movement.
func (o *Options) Tol(t ...float64) float64 {
	if len(t) > 0 {
		o.tol = t[0]
	}
	return o.tol
}

// KMeans partitions the rows of data into k clusters by Lloyd iterations
// with k-means++ seeding. data has one observation per row.
func KMeans(data *mat.Dense, k int, options ...*Options) (*Clusters, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	n, d := data.Dims()
	if k <= 0 {
		return nil, fmt.Errorf("cluster: k must be positive, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cluster: %d observations cannot fill %d clusters", n, k)
	}
	rng := rand.New(rand.NewSource(o.seed))
	cents := seedPlusPlus(data, k, rng)
	assign := make([]int, n)
	newcents := mat.NewDense(k, d, nil)
	counts := make([]int, k)
	var iter int
	for iter = 0; iter < o.maxIter; iter++ {
		//assignment step
		for i := 0; i < n; i++ {
			assign[i] = nearest(data.RawRowView(i), cents)
		}
		//update step
		newcents.Zero()
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := assign[i]
			counts[c]++
			row := newcents.RawRowView(c)
			floats.Add(row, data.RawRowView(i))
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				//re-seed an emptied cluster on the observation farthest
				//from its centroid
				far := farthest(data, cents, assign)
				copy(newcents.RawRowView(c), data.RawRowView(far))
				assign[far] = c
				continue
			}
			floats.Scale(1/float64(counts[c]), newcents.RawRowView(c))
		}
		//convergence: largest centroid displacement under tolerance
		var moved float64
		for c := 0; c < k; c++ {
			moved = math.Max(moved, floats.Distance(cents.RawRowView(c), newcents.RawRowView(c), 2))
		}
		cents.Copy(newcents)
		if moved < o.tol {
			break
		}
	}
	return &Clusters{Assignments: assign, Centroids: cents, Iterations: iter + 1}, nil
}

// seedPlusPlus picks the k initial centroids with the k-means++ rule: the
// first uniformly, the rest proportional to the squared distance to the
// nearest centroid already chosen.
func seedPlusPlus(data *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := data.Dims()
	cents := mat.NewDense(k, d, nil)
	first := rng.Intn(n)
	copy(cents.RawRowView(0), data.RawRowView(first))
	dist2 := make([]float64, n)
	for c := 1; c < k; c++ {
		var total float64
		for i := 0; i < n; i++ {
			best := math.Inf(1)
			for j := 0; j < c; j++ {
				dd := floats.Distance(data.RawRowView(i), cents.RawRowView(j), 2)
				if dd*dd < best {
					best = dd * dd
				}
			}
			dist2[i] = best
			total += best
		}
		if total == 0 { //all points already on a centroid
			copy(cents.RawRowView(c), data.RawRowView(rng.Intn(n)))
			continue
		}
		target := rng.Float64() * total
		var acc float64
		pick := n - 1
		for i, v := range dist2 {
			acc += v
			if acc >= target {
				pick = i
				break
			}
		}
		copy(cents.RawRowView(c), data.RawRowView(pick))
	}
	return cents
}

func nearest(obs []float64, cents *mat.Dense) int {
	k, _ := cents.Dims()
	best := 0
	bestd := math.Inf(1)
	for c := 0; c < k; c++ {
		d := floats.Distance(obs, cents.RawRowView(c), 2)
		if d < bestd {
			bestd = d
			best = c
		}
	}
	return best
}

func farthest(data *mat.Dense, cents *mat.Dense, assign []int) int {
	n, _ := data.Dims()
	far := 0
	fard := -1.0
	for i := 0; i < n; i++ {
		d := floats.Distance(data.RawRowView(i), cents.RawRowView(assign[i]), 2)
		if d > fard {
			fard = d
			far = i
		}
	}
	return far
}

// Flatten builds the observation matrix for clustering geometries: one row
// per geometry, holding its natoms*3 coordinates. All geometries must have
// the same number of atoms.
func Flatten(geoms []*v3.Matrix) (*mat.Dense, error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("cluster: no geometries to flatten")
	}
	natoms := geoms[0].NVecs()
	data := mat.NewDense(len(geoms), natoms*3, nil)
	for i, g := range geoms {
		if g.NVecs() != natoms {
			return nil, fmt.Errorf("cluster: geometry %d has %d atoms, expected %d", i, g.NVecs(), natoms)
		}
		row := data.RawRowView(i)
		for a := 0; a < natoms; a++ {
			for k := 0; k < 3; k++ {
				row[a*3+k] = g.At(a, k)
			}
		}
	}
	return data, nil
}
