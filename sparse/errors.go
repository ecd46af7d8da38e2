/*
 * errors.go, part of dgeom.
 *
 * Copyright 2024 The owl dgeom authors.
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

package sparse

import "fmt"

// PanicMsg is the kind of a sparse error. The constants below are used both as
// panic values (by At) and as the kinds wrapped by Error, so errors.Is works
// on either.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape           = PanicMsg("sparse: dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("sparse: index out of range")
	ErrDiagonal        = PanicMsg("sparse: bounds are not defined for the diagonal")
	ErrBadBound        = PanicMsg("sparse: lower bound larger than upper bound, or negative bound")
	ErrNotSquare       = PanicMsg("sparse: expected a square matrix")
	ErrNegativePower   = PanicMsg("sparse: negative matrix power")
)

// Error is the error type returned by the sparse package. It implements the
// dgeom Error interface.
type Error struct {
	kind     PanicMsg
	message  string
	deco     []string
	critical bool
}

func newError(kind PanicMsg, caller string, format string, a ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, a...), deco: []string{caller}, critical: true}
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	if err.message == "" {
		return string(err.kind)
	}
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty string just returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns whether the error is critical. Sparse errors always are.
func (err *Error) Critical() bool { return err.critical }

// Is allows errors.Is(err, ErrShape) and friends.
func (err *Error) Is(target error) bool {
	k, ok := target.(PanicMsg)
	return ok && k == err.kind
}
