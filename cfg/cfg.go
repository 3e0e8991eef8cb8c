/*
 * cfg.go, part of ringpucker.
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

//Package cfg reads the YAML run configuration of the ringpucker command and
//drives a full analysis run from it: load, measure, classify, cluster,
//persist, plot.
package cfg

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	pucker "github.com/mpoblete/ringpucker"
	"github.com/mpoblete/ringpucker/cluster"
	"github.com/mpoblete/ringpucker/puckerplot"
	"github.com/mpoblete/ringpucker/traj/xyz"
)

// ClusterCfg configures the optional k-means step. K 0 (the default)
// disables clustering.
type ClusterCfg struct {
	K    int   `yaml:"k"`
	Seed int64 `yaml:"seed"`
}

// PlotCfg names the optional plot outputs. An empty name skips that plot.
type PlotCfg struct {
	Map2D  string `yaml:"map2d"`
	Sphere string `yaml:"sphere"`
}

// Cfg is the run configuration. It can be read from a YAML file with New or
// filled by hand; in the latter case call Check before Run.
type Cfg struct {
	// XYZ lists the multi-frame XYZ files to load and concatenate, in order.
	XYZ []string `yaml:"xyz"`

	// TrajDir is the root holding TRAJ<N> folders, the alternative input
	// layout. Exactly one of XYZ and TrajDir must be set.
	TrajDir string `yaml:"trajdir"`

	// TrajFile is the XYZ file name inside each TRAJ folder (default dyn.xyz).
	TrajFile string `yaml:"trajfile"`

	// Ring holds the 0-based atom indexes of the ring, in cyclic bond order.
	Ring []int `yaml:"ring"`

	// Out is the results table path.
	Out string `yaml:"out"`

	// Classify turns conformation labeling on (default true through New).
	Classify bool `yaml:"classify"`

	// PlanarCutoff overrides the planar amplitude cutoff, in Å (0 keeps the
	// default).
	PlanarCutoff float64 `yaml:"planarCutoff"`

	Cluster ClusterCfg `yaml:"cluster"`
	Plots   PlotCfg    `yaml:"plots"`
}

// New opens and decodes the YAML configuration file at path and checks it.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c := &Cfg{Classify: true, TrajFile: "dyn.xyz", Cluster: ClusterCfg{Seed: 1}}
	dec := yaml.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return c, nil
}

// Check returns an error if the configuration cannot drive a run.
func (c *Cfg) Check() error {
	if len(c.XYZ) == 0 && c.TrajDir == "" {
		return fmt.Errorf("no input: set either xyz or trajdir")
	}
	if len(c.XYZ) > 0 && c.TrajDir != "" {
		return fmt.Errorf("xyz and trajdir are mutually exclusive")
	}
	if len(c.Ring) < 5 {
		return fmt.Errorf("ring needs at least 5 atom indexes, got %d", len(c.Ring))
	}
	if c.Out == "" {
		return fmt.Errorf("out (results table path) must be set")
	}
	if c.Cluster.K < 0 {
		return fmt.Errorf("cluster.k cannot be negative")
	}
	if c.PlanarCutoff < 0 {
		return fmt.Errorf("planarCutoff cannot be negative")
	}
	return nil
}

// Load reads the configured input into frames.
func (c *Cfg) Load() ([]*xyz.Frame, error) {
	if c.TrajDir != "" {
		return xyz.ReadTrajDirs(c.TrajDir, c.TrajFile)
	}
	paths, err := c.expandXYZ()
	if err != nil {
		return nil, err
	}
	return xyz.ReadAllFiles(paths...)
}

// expandXYZ expands glob patterns in the xyz list, in order. A pattern that
// matches nothing is skipped with a warning; a literal path is passed
// through untouched, so a listed file that is missing still fails the run.
func (c *Cfg) expandXYZ() ([]string, error) {
	var paths []string
	for _, p := range c.XYZ {
		if !strings.ContainsAny(p, "*?[") {
			paths = append(paths, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad xyz pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			log.Printf("xyz pattern %q matched no files, skipping", p)
			continue
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no trajectory files left after expanding the xyz patterns")
	}
	return paths, nil
}

// Source describes the configured input for the table provenance comments.
func (c *Cfg) Source() string {
	if c.TrajDir != "" {
		return fmt.Sprintf("TRAJ folders under %s (%s)", c.TrajDir, c.TrajFile)
	}
	return strings.Join(c.XYZ, " ")
}

// Run performs the whole configured analysis.
func (c *Cfg) Run() error {
	frames, err := c.Load()
	if err != nil {
		return fmt.Errorf("loading geometries: %w", err)
	}
	log.Printf("Loaded %d geometries of %d atoms", len(frames), frames[0].Coords.NVecs())
	geoms := xyz.Coords(frames)

	o := pucker.DefaultOptions()
	o.Classify(c.Classify)
	if c.PlanarCutoff > 0 {
		o.PlanarCutoff(c.PlanarCutoff)
	}
	rows, err := pucker.Analyze(geoms, c.Ring, o)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if c.Cluster.K > 0 {
		data, err := cluster.Flatten(geoms)
		if err != nil {
			return err
		}
		co := cluster.DefaultOptions()
		co.Seed(c.Cluster.Seed)
		clusters, err := cluster.KMeans(data, c.Cluster.K, co)
		if err != nil {
			return fmt.Errorf("clustering: %w", err)
		}
		for i, r := range rows {
			r.Cluster = clusters.Assignments[i]
		}
		log.Printf("k-means (k=%d, seed=%d): cluster sizes %v after %d iterations",
			c.Cluster.K, c.Cluster.Seed, clusters.Sizes(), clusters.Iterations)
	}

	t := pucker.NewTable(rows, c.Source(), c.Ring)
	if err := t.WriteFile(c.Out); err != nil {
		return fmt.Errorf("writing %s: %w", c.Out, err)
	}
	logSummary(t)

	if c.Plots.Map2D != "" {
		if err := puckerplot.Map2D(rows, "Ring puckering map", c.Plots.Map2D); err != nil {
			return fmt.Errorf("2D map: %w", err)
		}
		log.Printf("Wrote %s", c.Plots.Map2D)
	}
	if c.Plots.Sphere != "" {
		if err := puckerplot.Sphere([][]*pucker.Result{rows}, []string{c.Out}, "Cremer-Pople puckering sphere", c.Plots.Sphere); err != nil {
			return fmt.Errorf("sphere plot: %w", err)
		}
		log.Printf("Wrote %s", c.Plots.Sphere)
	}
	return nil
}

func logSummary(t *pucker.Table) {
	s := t.Summary()
	log.Printf("Total: %d, measured: %d", s.Total, s.Measured)
	if s.Measured > 0 {
		log.Printf("q: %.6f +/- %.6f Å", s.QMean, s.QStd)
		log.Printf("theta: %.2f°", s.ThetaMean*pucker.Rad2Deg)
		log.Printf("phi: %.2f°", s.PhiMean)
	}
	for _, conf := range sortedConfs(s) {
		n := s.ConfCounts[conf]
		log.Printf("  %-12s: %6d (%5.2f%%)", conf, n, 100*float64(n)/float64(s.Total))
	}
}

func sortedConfs(s *pucker.Summary) []pucker.Conformation {
	confs := make([]pucker.Conformation, 0, len(s.ConfCounts))
	for c := range s.ConfCounts {
		confs = append(confs, c)
	}
	sort.Slice(confs, func(i, j int) bool { return confs[i] < confs[j] })
	return confs
}
