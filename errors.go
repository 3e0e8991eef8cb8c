/*
 * errors.go, part of ringpucker.
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

import "fmt"

// CError is the concrete error type of the root package. It implements the
// Error interface.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// ShapeError reports ring coordinates with the wrong shape: not an Nx3
// matrix, too few atoms, or an atom count that does not match what the
// operation supports.
type ShapeError struct {
	CError
}

// DegenerateRingError reports ring coordinates whose mean-plane construction
// is numerically singular, i.e. collinear or coincident ring atoms.
type DegenerateRingError struct {
	CError
}

func shapeErrorf(format string, a ...interface{}) ShapeError {
	return ShapeError{CError{msg: fmt.Sprintf(format, a...)}}
}

func degenerateErrorf(format string, a ...interface{}) DegenerateRingError {
	return DegenerateRingError{CError{msg: fmt.Sprintf(format, a...)}}
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
