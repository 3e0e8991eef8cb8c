/*
 * puckerplot.go, part of ringpucker.
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

//puckerplot draws puckering maps and puckering spheres from persisted
//results tables, without re-running the analysis.
//
//	puckerplot results.dat                 one 2D map per table
//	puckerplot -sphere *.classified.dat    one sphere with all tables
package main

import (
	"flag"
	"log"
	"path/filepath"
	"strings"

	pucker "github.com/mpoblete/ringpucker"
	"github.com/mpoblete/ringpucker/puckerplot"
)

func main() {
	sphere := flag.Bool("sphere", false, "draw all tables on a single puckering sphere instead of one 2D map each")
	out := flag.String("o", "", "output file (sphere mode only; default sphere.png)")
	flag.Parse()
	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no results tables given")
	}

	if *sphere {
		sets := make([][]*pucker.Result, 0, len(files))
		labels := make([]string, 0, len(files))
		for _, f := range files {
			t, err := pucker.ReadTableFile(f)
			if err != nil {
				log.Fatal(err)
			}
			sets = append(sets, t.Rows)
			labels = append(labels, baseName(f))
		}
		output := *out
		if output == "" {
			output = "sphere.png"
		}
		if err := puckerplot.Sphere(sets, labels, "Cremer-Pople puckering sphere", output); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %s", output)
		return
	}

	for _, f := range files {
		t, err := pucker.ReadTableFile(f)
		if err != nil {
			log.Fatal(err)
		}
		output := baseName(f) + "_2d.png"
		if err := puckerplot.Map2D(t.Rows, baseName(f), output); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %s", output)
	}
}

// baseName strips the directory and the table extensions from a path, so
// 2.spawn.classified.dat becomes 2.spawn.
func baseName(path string) string {
	b := filepath.Base(path)
	for _, suf := range []string{".dat", ".classified", ".params"} {
		b = strings.TrimSuffix(b, suf)
	}
	return b
}
