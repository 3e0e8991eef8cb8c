/*
 * table_test.go, part of ringpucker.
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
	"bytes"
	"math"
	"strings"
	"testing"
)

func sampleRows() []*Result {
	return []*Result{
		{Idx: 0, Q: 0.61237244, Theta: 0.05, Phi: 12.5, Conf: Chair, Cluster: 0},
		{Idx: 1, Q: 0.58011121, Theta: 1.57079633, Phi: 61.2, Conf: Boat, Cluster: 1},
		{Idx: 2, Q: math.NaN(), Theta: math.NaN(), Phi: math.NaN(), Conf: Unclassified, Cluster: 0},
		{Idx: 3, Q: 0.04412331, Theta: 1.1, Phi: 300.0, Conf: Planar, Cluster: 1},
	}
}

func TestTableRoundTrip(Te *testing.T) {
	t := NewTable(sampleRows(), "test set", []int{2, 3, 4, 5, 6, 7})
	if !t.HasConf || !t.HasCluster {
		Te.Fatal("optional columns not inferred from the rows")
	}
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		Te.Fatal(err)
	}
	got, err := ReadTable(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if len(got.Rows) != len(t.Rows) {
		Te.Fatalf("got %d rows back, want %d", len(got.Rows), len(t.Rows))
	}
	if !got.HasConf || !got.HasCluster {
		Te.Error("optional columns lost in the round trip")
	}
	for i, r := range got.Rows {
		w := t.Rows[i]
		if r.Idx != w.Idx || r.Conf != w.Conf || r.Cluster != w.Cluster {
			Te.Errorf("row %d: got %+v, want %+v", i, r, w)
		}
		if w.Failed() {
			if !r.Failed() || !math.IsNaN(r.Theta) || !math.IsNaN(r.Phi) {
				Te.Errorf("row %d: NaN marker lost", i)
			}
			continue
		}
		if math.Abs(r.Q-w.Q) > 1e-6 || math.Abs(r.Theta-w.Theta) > 1e-6 || math.Abs(r.Phi-w.Phi) > 1e-6 {
			Te.Errorf("row %d: numeric drift: got %+v, want %+v", i, r, w)
		}
	}
}

func TestTableWithoutOptionalColumns(Te *testing.T) {
	rows := []*Result{
		{Idx: 0, Q: 0.6, Theta: 0.1, Phi: 10, Cluster: -1},
		{Idx: 1, Q: 0.5, Theta: 1.5, Phi: 200, Cluster: -1},
	}
	t := NewTable(rows, "", nil)
	if t.HasConf || t.HasCluster {
		Te.Fatal("optional columns wrongly inferred")
	}
	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		Te.Fatal(err)
	}
	got, err := ReadTable(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if got.HasConf || got.HasCluster {
		Te.Error("optional columns appeared out of nowhere")
	}
	if got.Rows[1].Cluster != -1 {
		Te.Errorf("missing cluster column should read back as -1, got %d", got.Rows[1].Cluster)
	}
}

func TestReadTableComma(Te *testing.T) {
	in := `# written elsewhere
geometry_idx, q, theta, phi, conformation
0, 0.61, 0.05, 12.5, chair
1, NA, NA, NA, unclassified
2, 0.58, 1.57, 61.2, boat
`
	got, err := ReadTable(strings.NewReader(in))
	if err != nil {
		Te.Fatal(err)
	}
	if len(got.Rows) != 3 {
		Te.Fatalf("got %d rows, want 3", len(got.Rows))
	}
	if !got.Rows[1].Failed() {
		Te.Error("NA fields should read as NaN")
	}
	if got.Rows[2].Conf != Boat {
		Te.Errorf("got %s, want boat", got.Rows[2].Conf)
	}
	if got.HasCluster {
		Te.Error("no cluster column in the input")
	}
}

func TestReadTableMalformed(Te *testing.T) {
	if _, err := ReadTable(strings.NewReader("# only comments\n")); err == nil {
		Te.Error("headerless input should be an error")
	}
	in := "geometry_idx q theta phi\n0 0.6 0.05\n"
	if _, err := ReadTable(strings.NewReader(in)); err == nil {
		Te.Error("short row should be an error")
	}
	in = "q theta phi\n0.6 0.05 12.5\n"
	if _, err := ReadTable(strings.NewReader(in)); err == nil {
		Te.Error("header without geometry_idx should be an error")
	}
}

func TestSummary(Te *testing.T) {
	t := NewTable(sampleRows(), "", nil)
	s := t.Summary()
	if s.Total != 4 || s.Measured != 3 {
		Te.Errorf("got total=%d measured=%d, want 4 and 3", s.Total, s.Measured)
	}
	wantQ := (0.61237244 + 0.58011121 + 0.04412331) / 3
	if math.Abs(s.QMean-wantQ) > 1e-12 {
		Te.Errorf("mean q: got %g, want %g", s.QMean, wantQ)
	}
	if s.ConfCounts[Chair] != 1 || s.ConfCounts[Unclassified] != 1 {
		Te.Errorf("bad conformation counts: %v", s.ConfCounts)
	}
}
