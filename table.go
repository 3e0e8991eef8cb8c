/*
 * table.go, part of ringpucker.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Table is a set of analysis rows together with the provenance needed to
// persist them. The on-disk format is a whitespace-delimited text table with
// a header row, leading '#' comment lines carrying provenance, and a
// trailing '#' block with summary statistics. Theta is persisted in radians
// and phi in degrees, as stored in the rows themselves.
type Table struct {
	Rows   []*Result
	Source string //where the geometries came from, free text
	Ring   []int  //ring atom indexes, 0-based

	//which optional columns to persist
	HasConf    bool
	HasCluster bool
}

// NewTable builds a Table from rows, setting the optional columns from their
// content: the conformation column is present if any row carries a label,
// the cluster column if any row has a cluster id >= 0.
func NewTable(rows []*Result, source string, ring []int) *Table {
	t := &Table{Rows: rows, Source: source, Ring: ring}
	for _, r := range rows {
		if r.Conf != "" {
			t.HasConf = true
		}
		if r.Cluster >= 0 {
			t.HasCluster = true
		}
	}
	return t
}

// Summary holds the aggregate statistics of a table: the mean and standard
// deviation of the numeric columns over the non-failed rows, and the count
// of rows per conformation label.
type Summary struct {
	Total      int
	Measured   int //rows that are not NaN markers
	QMean      float64
	QStd       float64
	ThetaMean  float64 //radians
	ThetaStd   float64
	PhiMean    float64 //degrees
	PhiStd     float64
	ConfCounts map[Conformation]int
}

// Summary computes the aggregate statistics of the table.
func (t *Table) Summary() *Summary {
	s := &Summary{Total: len(t.Rows), ConfCounts: make(map[Conformation]int)}
	var qs, thetas, phis []float64
	for _, r := range t.Rows {
		if !r.Failed() {
			s.Measured++
			qs = append(qs, r.Q)
			thetas = append(thetas, r.Theta)
			phis = append(phis, r.Phi)
		}
		if r.Conf != "" {
			s.ConfCounts[r.Conf]++
		}
	}
	if s.Measured > 0 {
		s.QMean, s.QStd = stat.Mean(qs, nil), stat.StdDev(qs, nil)
		s.ThetaMean, s.ThetaStd = stat.Mean(thetas, nil), stat.StdDev(thetas, nil)
		s.PhiMean, s.PhiStd = stat.Mean(phis, nil), stat.StdDev(phis, nil)
	}
	return s
}

// sortedConfs returns the labels present in the summary in lexical order, so
// the persisted summary block is reproducible.
func (s *Summary) sortedConfs() []Conformation {
	confs := make([]Conformation, 0, len(s.ConfCounts))
	for c := range s.ConfCounts {
		confs = append(confs, c)
	}
	sort.Slice(confs, func(i, j int) bool { return confs[i] < confs[j] })
	return confs
}

// WriteFile persists the table to path.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := t.Write(w); err != nil {
		return err
	}
	return w.Flush()
}

// Write persists the table to w.
func (t *Table) Write(w io.Writer) error {
	fmt.Fprintf(w, "# Cremer-Pople ring puckering parameters\n")
	if t.Source != "" {
		fmt.Fprintf(w, "# source: %s\n", t.Source)
	}
	if t.Ring != nil {
		fmt.Fprintf(w, "# ring atoms: %v\n", t.Ring)
	}
	fmt.Fprintf(w, "# theta in radians, phi in degrees, q in Angstrom\n#\n")
	fmt.Fprintf(w, "%14s %14s %14s %14s", "geometry_idx", "q", "theta", "phi")
	if t.HasConf {
		fmt.Fprintf(w, " %13s", "conformation")
	}
	if t.HasCluster {
		fmt.Fprintf(w, " %8s", "cluster")
	}
	fmt.Fprintln(w)
	for _, r := range t.Rows {
		fmt.Fprintf(w, "%14d %14.8f %14.8f %14.8f", r.Idx, r.Q, r.Theta, r.Phi)
		if t.HasConf {
			conf := r.Conf
			if conf == "" {
				conf = Unclassified
			}
			fmt.Fprintf(w, " %13s", conf)
		}
		if t.HasCluster {
			fmt.Fprintf(w, " %8d", r.Cluster)
		}
		fmt.Fprintln(w)
	}
	s := t.Summary()
	fmt.Fprintf(w, "#\n# total geometries: %d\n# measured: %d\n", s.Total, s.Measured)
	if s.Measured > 0 {
		fmt.Fprintf(w, "# q:     %.6f +/- %.6f\n", s.QMean, s.QStd)
		fmt.Fprintf(w, "# theta: %.6f +/- %.6f\n", s.ThetaMean, s.ThetaStd)
		fmt.Fprintf(w, "# phi:   %.6f +/- %.6f\n", s.PhiMean, s.PhiStd)
	}
	if len(s.ConfCounts) > 0 {
		fmt.Fprintf(w, "# conformation counts:\n")
		for _, c := range s.sortedConfs() {
			n := s.ConfCounts[c]
			fmt.Fprintf(w, "#   %-12s: %6d (%5.2f%%)\n", c, n, 100*float64(n)/float64(s.Total))
		}
	}
	return nil
}

// ReadTableFile reads a persisted table from path.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTable reads a table in the persisted format from r. Comment ('#') and
// blank lines are skipped anywhere in the file. The first remaining line
// must be the header; it decides which optional columns are present. Both
// whitespace- and comma-delimited tables are accepted. Numeric columns are
// coerced (NaN markers included); the conformation column is kept verbatim.
func ReadTable(r io.Reader) (*Table, error) {
	t := new(Table)
	scanner := bufio.NewScanner(r)
	var cols []string
	comma := false
	iq, itheta, iphi, iconf, icluster := -1, -1, -1, -1, -1
	idx := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if cols == nil { //header
			comma = strings.Contains(line, ",")
			cols = splitRecord(line, comma)
			for i, c := range cols {
				switch c {
				case "geometry_idx":
					idx = i
				case "q":
					iq = i
				case "theta":
					itheta = i
				case "phi":
					iphi = i
				case "conformation":
					iconf = i
					t.HasConf = true
				case "cluster":
					icluster = i
					t.HasCluster = true
				}
			}
			if idx < 0 || iq < 0 || itheta < 0 || iphi < 0 {
				return nil, fmt.Errorf("malformed table header: %q", line)
			}
			continue
		}
		fields := splitRecord(line, comma)
		if len(fields) != len(cols) {
			return nil, fmt.Errorf("row has %d fields, header has %d: %q", len(fields), len(cols), line)
		}
		row := &Result{Cluster: -1}
		var err error
		if row.Idx, err = strconv.Atoi(fields[idx]); err != nil {
			return nil, fmt.Errorf("bad geometry_idx in %q: %w", line, err)
		}
		if row.Q, err = parseFloat(fields[iq]); err != nil {
			return nil, fmt.Errorf("bad q in %q: %w", line, err)
		}
		if row.Theta, err = parseFloat(fields[itheta]); err != nil {
			return nil, fmt.Errorf("bad theta in %q: %w", line, err)
		}
		if row.Phi, err = parseFloat(fields[iphi]); err != nil {
			return nil, fmt.Errorf("bad phi in %q: %w", line, err)
		}
		if iconf >= 0 {
			row.Conf = Conformation(fields[iconf])
		}
		if icluster >= 0 {
			if row.Cluster, err = strconv.Atoi(fields[icluster]); err != nil {
				return nil, fmt.Errorf("bad cluster in %q: %w", line, err)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if cols == nil {
		return nil, fmt.Errorf("no table header found")
	}
	return t, nil
}

func splitRecord(line string, comma bool) []string {
	if !comma {
		return strings.Fields(line)
	}
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// parseFloat is strconv.ParseFloat, with empty and "NA" fields mapped to
// NaN so tables touched by other tools still load.
func parseFloat(s string) (float64, error) {
	if s == "" || s == "NA" || s == "nan" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
