/*
 * xyz.go, part of ringpucker.
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

//Package xyz reads multi-frame XYZ trajectory files, the concatenated
//"number of atoms / comment / element x y z" format that MD and surface
//hopping codes commonly write. Comment lines of the form
//"TRAJ = 1 | Time = 3.0 fs | ..." are parsed into per-frame metadata.
//Files compressed with gzip (.gz) or zstd (.zst, .zstd) are decompressed
//transparently, decided by the file extension.
package xyz

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/mpoblete/ringpucker/v3"
)

// Frame is one geometry of a trajectory: its coordinates plus the metadata
// parsed from the XYZ comment line. When the comment carries no metadata,
// Traj defaults to 0 and Time to the frame's index within its file.
type Frame struct {
	Coords  *v3.Matrix
	Traj    int
	Time    float64
	Comment string
}

// XYZ is a handle for reading one XYZ trajectory. It implements the
// pucker.Traj interface.
type XYZ struct {
	f        *os.File
	zr       io.ReadCloser //decompressor, nil for plain files
	h        *bufio.Reader
	natoms   int
	elements []string
	filename string
	readable bool
	nread    int    //frames read so far
	pending  *Frame //first frame, read eagerly by New
}

// zstdql adapts zstd.Decoder, whose Close returns nothing, to io.ReadCloser.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

// New opens an XYZ trajectory for reading. The first frame is read
// immediately, so the atom count (Len) and element symbols are available
// right away; a file without a single complete frame is an error.
func New(name string) (*XYZ, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var r io.Reader = f
	var zr io.ReadCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		g, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{"can't open gzip stream: " + err.Error(), name, []string{"New"}, true}
		}
		zr, r = g, g
	case ".zst", ".zstd":
		z, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{"can't open zstd stream: " + err.Error(), name, []string{"New"}, true}
		}
		ql := zstdql{z.Close, z}
		zr, r = ql, z
	}
	X, err := NewReader(r, name)
	if err != nil {
		if zr != nil {
			zr.Close()
		}
		f.Close()
		return nil, err
	}
	X.f = f
	X.zr = zr
	return X, nil
}

// NewReader is New for an arbitrary reader. name is only used in error
// messages.
func NewReader(r io.Reader, name string) (*XYZ, error) {
	X := &XYZ{h: bufio.NewReader(r), filename: name, natoms: -1}
	first, err := X.readFrame()
	if err != nil {
		if _, ok := err.(lastFrameError); ok {
			return nil, Error{"no frames in trajectory", name, []string{"NewReader"}, true}
		}
		return nil, err
	}
	X.pending = first
	X.readable = true
	return X, nil
}

// Readable returns true if it is possible to call Next on the handle.
func (X *XYZ) Readable() bool {
	return X.readable
}

// Len returns the number of atoms in each frame of the trajectory.
func (X *XYZ) Len() int {
	return X.natoms
}

// Elements returns the element symbols of the atoms, from the first frame.
func (X *XYZ) Elements() []string {
	return X.elements
}

// Next puts the coordinates of the next frame in c, or discards the frame if
// c is nil. When the trajectory ends normally the returned error implements
// pucker.LastFrameError and the handle is closed.
func (X *XYZ) Next(c *v3.Matrix) error {
	fr, err := X.NextFrame()
	if err != nil {
		return err
	}
	if c == nil {
		return nil
	}
	if c.NVecs() != X.natoms {
		return Error{fmt.Sprintf("destination has %d vectors, frame has %d atoms", c.NVecs(), X.natoms), X.filename, []string{"Next"}, true}
	}
	c.Dense.Copy(fr.Coords.Dense)
	return nil
}

// NextFrame reads and returns the next frame with its metadata.
func (X *XYZ) NextFrame() (*Frame, error) {
	if !X.readable {
		return nil, Error{TrajUnIniRead, X.filename, []string{"NextFrame"}, true}
	}
	if X.pending != nil {
		fr := X.pending
		X.pending = nil
		X.nread++
		return fr, nil
	}
	fr, err := X.readFrame()
	if err != nil {
		if _, ok := err.(lastFrameError); ok {
			X.Close()
		}
		return nil, err
	}
	X.nread++
	return fr, nil
}

// Close closes the handle and marks it as unreadable.
func (X *XYZ) Close() {
	if !X.readable && X.f == nil {
		return
	}
	if X.zr != nil {
		X.zr.Close()
		X.zr = nil
	}
	if X.f != nil {
		X.f.Close()
		X.f = nil
	}
	X.readable = false
}

// readFrame reads one frame from the stream. EOF before the atom count line
// is the normal end of the trajectory; EOF in the middle of a frame drops
// the incomplete frame with a warning, as trajectory writers killed mid-run
// leave such tails behind.
func (X *XYZ) readFrame() (*Frame, error) {
	var countline string
	var err error
	//skip blank lines between frames
	for {
		countline, err = X.h.ReadString('\n')
		if err != nil && countline == "" {
			return nil, newlastFrameError(X.filename, "readFrame")
		}
		if strings.TrimSpace(countline) != "" {
			break
		}
		if err != nil {
			return nil, newlastFrameError(X.filename, "readFrame")
		}
	}
	nat, err2 := strconv.Atoi(strings.TrimSpace(countline))
	if err2 != nil {
		return nil, Error{fmt.Sprintf("can't read atom count from %q: %s", strings.TrimSpace(countline), err2.Error()), X.filename, []string{"readFrame"}, true}
	}
	if X.natoms == -1 {
		X.natoms = nat
	} else if nat != X.natoms {
		return nil, Error{fmt.Sprintf("frame with %d atoms in a trajectory of %d-atom frames", nat, X.natoms), X.filename, []string{"readFrame"}, true}
	}
	comment, err := X.h.ReadString('\n')
	if err != nil && comment == "" {
		log.Printf("ringpucker/traj/xyz: dropping incomplete final frame in %s", X.filename)
		return nil, newlastFrameError(X.filename, "readFrame")
	}
	comment = strings.TrimSpace(comment)
	fr := &Frame{Coords: v3.Zeros(nat), Comment: comment}
	firstframe := X.elements == nil
	for i := 0; i < nat; i++ {
		line, err := X.h.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			log.Printf("ringpucker/traj/xyz: dropping incomplete final frame in %s", X.filename)
			return nil, newlastFrameError(X.filename, "readFrame")
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, Error{fmt.Sprintf("ill-formed coordinate line %q", strings.TrimSpace(line)), X.filename, []string{"readFrame"}, true}
		}
		for k := 0; k < 3; k++ {
			val, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, Error{fmt.Sprintf("can't parse coordinate in %q: %s", strings.TrimSpace(line), err.Error()), X.filename, []string{"readFrame"}, true}
			}
			fr.Coords.Set(i, k, val)
		}
		if firstframe {
			X.elements = append(X.elements, fields[0])
		}
	}
	fr.Traj, fr.Time = parseComment(comment, X.nread)
	return fr, nil
}

var trajRe = regexp.MustCompile(`TRAJ[^|]*`)
var timeRe = regexp.MustCompile(`Time[^|]*`)
var numRe = regexp.MustCompile(`-?[0-9]+\.?[0-9]*`)

// parseComment extracts the trajectory id and time from a comment of the
// form "TRAJ = 1 | Time = 3.0 fs | ...". Missing fields take the defaults:
// trajectory 0, time equal to the frame index within the file.
func parseComment(comment string, frameIdx int) (int, float64) {
	traj := 0
	time := float64(frameIdx)
	if m := trajRe.FindString(comment); m != "" {
		if num := numRe.FindString(m); num != "" {
			if v, err := strconv.Atoi(strings.TrimPrefix(num, "-")); err == nil {
				traj = v
			}
		}
	}
	if m := timeRe.FindString(comment); m != "" {
		if num := numRe.FindString(m); num != "" {
			if v, err := strconv.ParseFloat(num, 64); err == nil {
				time = v
			}
		}
	}
	return traj, time
}

// ReadAll reads every frame of the XYZ trajectory in path.
func ReadAll(path string) ([]*Frame, error) {
	X, err := New(path)
	if err != nil {
		return nil, err
	}
	defer X.Close()
	return readAll(X)
}

func readAll(X *XYZ) ([]*Frame, error) {
	var frames []*Frame
	for {
		fr, err := X.NextFrame()
		if err != nil {
			if _, ok := err.(lastFrameError); ok {
				break
			}
			return nil, err
		}
		frames = append(frames, fr)
	}
	if len(frames) == 0 {
		return nil, Error{"no frames in trajectory", X.filename, []string{"readAll"}, true}
	}
	return frames, nil
}

// ReadAllFiles reads and concatenates the frames of several XYZ files, in
// the given order. All files must have the same number of atoms per frame.
// A listed file that cannot be read is an error: globbing and skipping is
// the caller's business.
func ReadAllFiles(paths ...string) ([]*Frame, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no trajectory files given")
	}
	var all []*Frame
	natoms := -1
	for _, p := range paths {
		frames, err := ReadAll(p)
		if err != nil {
			return nil, err
		}
		if natoms == -1 {
			natoms = frames[0].Coords.NVecs()
		} else if frames[0].Coords.NVecs() != natoms {
			return nil, Error{fmt.Sprintf("file has %d atoms per frame, previous files had %d", frames[0].Coords.NVecs(), natoms), p, []string{"ReadAllFiles"}, true}
		}
		all = append(all, frames...)
	}
	return all, nil
}

var trajDirRe = regexp.MustCompile(`^TRAJ([0-9]+)$`)

// ReadTrajDirs loads the trajectory folders under root: every directory
// named TRAJ<N> is expected to contain an XYZ file called name, and its
// frames are tagged with trajectory id N. Folders are visited in numeric
// order. At least one folder must load.
func ReadTrajDirs(root, name string) ([]*Frame, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	type trajdir struct {
		id   int
		path string
	}
	var dirs []trajdir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := trajDirRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		dirs = append(dirs, trajdir{id, filepath.Join(root, e.Name(), name)})
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no TRAJ folders under %s", root)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].id < dirs[j].id })
	var all []*Frame
	for _, d := range dirs {
		frames, err := ReadAll(d.path)
		if err != nil {
			return nil, err
		}
		for _, fr := range frames {
			fr.Traj = d.id
		}
		all = append(all, frames...)
	}
	return all, nil
}

// Coords returns just the coordinate matrices of frames, in order, the shape
// the batch analysis takes.
func Coords(frames []*Frame) []*v3.Matrix {
	geoms := make([]*v3.Matrix, len(frames))
	for i, fr := range frames {
		geoms[i] = fr.Coords
	}
	return geoms
}

//Errors

// Error is the error type for XYZ trajectories. It implements
// pucker.TrajError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyz file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error.
func (err Error) Format() string { return "xyz" }

// Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead = "Traj object uninitialized to read"
)

// lastFrameError implements pucker.LastFrameError.
type lastFrameError struct {
	deco     []string
	fileName string
}

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "xyz" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) lastFrameError {
	e := lastFrameError{fileName: filename}
	e.deco = []string{caller}
	return e
}
