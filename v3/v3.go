/*
 * v3.go, part of ringpucker.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of row vectors in 3D space. Within the package it is
// understood that a "vector" is a row, i.e. the cartesian coordinates of one
// point. It embeds a gonum Dense with exactly 3 columns.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix wraps a gonum Dense into a Matrix. The matrix must have 3
// columns or the function panics.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// Matrix2Dense returns the underlying gonum Dense of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// NewMatrix builds a Matrix with 3 columns from data, which is read in
// row-major order. The length of data must be divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a view (not a copy) of the ith vector of the matrix.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// SwapVecs swaps the vectors i and j in the receiver.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	for k := 0; k < 3; k++ {
		tmp := F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, tmp)
	}
}

// SomeVecs puts in the receiver the vectors of A with the indexes in clist,
// in the given order. The receiver must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if len(clist) != F.NVecs() || A.NVecs() < len(clist) {
		panic(ErrShape)
	}
	for i, j := range clist {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(j, k))
		}
	}
}

// SomeVecsSafe is SomeVecs, but returns an error instead of panicking when
// the indexes or dimensions do not match.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{e.Error(), []string{"SomeVecsSafe"}, true}
			case mat.Error:
				err = Error{"in a gonum function: " + e.Error(), []string{"SomeVecsSafe"}, true}
			default:
				panic(r)
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// AddVec adds the 1x3 vector vec to each vector of A, putting the result in
// the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar := A.NVecs()
	if vec.NVecs() != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)+vec.At(0, k))
		}
	}
}

// SubVec subtracts the 1x3 vector vec from each vector of A, putting the
// result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar := A.NVecs()
	if vec.NVecs() != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)-vec.At(0, k))
		}
	}
}

// Cross puts the cross product of the 1x3 vectors a and b in the receiver,
// which must also be 1x3.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

// Dot returns the dot product of the receiver and B, both of which must be
// 1x3 vectors.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrShape)
	}
	return F.At(0, 0)*B.At(0, 0) + F.At(0, 1)*B.At(0, 1) + F.At(0, 2)*B.At(0, 2)
}

// Norm returns the Frobenius norm of the receiver, i.e. the euclidean norm
// when the receiver is a single vector.
func (F *Matrix) Norm() float64 {
	return mat.Norm(F.Dense, 2)
}

// Unit puts in the receiver the unit vector in the direction of the 1x3
// vector A.
func (F *Matrix) Unit(A *Matrix) {
	n := A.Norm()
	F.Scale(1/n, A)
}

// Scale puts A scaled by v in the receiver. The receiver may be A itself.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

// Mean returns the centroid of the vectors in the receiver as a new 1x3
// vector.
func (F *Matrix) Mean() *Matrix {
	r := F.NVecs()
	m := Zeros(1)
	for i := 0; i < r; i++ {
		for k := 0; k < 3; k++ {
			m.Set(0, k, m.At(0, k)+F.At(i, k))
		}
	}
	m.Scale(1/float64(r), m)
	return m
}

// Copy returns a fresh copy of the receiver.
func (F *Matrix) Copy() *Matrix {
	return &Matrix{mat.DenseCopyOf(F.Dense)}
}

func (F *Matrix) String() string {
	r := F.NVecs()
	ret := make([]string, 0, r)
	for i := 0; i < r; i++ {
		ret = append(ret, fmt.Sprintf("%8.3f %8.3f %8.3f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return strings.Join(ret, "\n")
}

// Errors

// Error is the error type for the v3 package. It implements the
// pucker.Error interface.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

// Decorate adds the dec string to the decoration slice of the error and
// returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

// PanicMsg is the type used for the panics thrown by this package. It
// satisfies the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("ringpucker/v3: a Matrix must have 3 columns")
	ErrNoCrossProduct  = PanicMsg("ringpucker/v3: invalid matrix for cross product")
	ErrShape           = PanicMsg("ringpucker/v3: dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("ringpucker/v3: index out of range")
)
