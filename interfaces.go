/*
 * interfaces.go, part of ringpucker.
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

import v3 "github.com/mpoblete/ringpucker/v3"

// Traj is the interface for any trajectory object that can hand out frames
// one at a time. The caller provides the destination matrix; a
// LastFrameError signals the normal end of the trajectory.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output, or discards it if output is nil.
	Next(output *v3.Matrix) error

	//Returns the number of atoms per frame
	Len() int
}

// Error is the interface for errors that all packages in this module
// implement. The Decorate method allows adding information to the error as it
// is passed up, without wrapping it in another type. Each call returns the
// current decoration slice; passing an empty string just returns it.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a do-nothing method to distinguish the harmless
// end-of-trajectory condition from real TrajErrors, so it can be filtered in
// a type switch.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}
