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

package smooth

import "fmt"

// PanicMsg is the kind of a smooth error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotConverged = PanicMsg("smooth: bound smoothing did not reach a fixed point")
	ErrShape        = PanicMsg("smooth: dimension mismatch")
	ErrEmpty        = PanicMsg("smooth: empty bound set")
)

// Error is the generic error type of the package.
type Error struct {
	kind     PanicMsg
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	if err.message == "" {
		return string(err.kind)
	}
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// Is allows errors.Is(err, ErrNotConverged).
func (err *Error) Is(target error) bool {
	k, ok := target.(PanicMsg)
	return ok && k == err.kind
}

// InfeasibleError is returned when the restraints contradict the triangle
// inequality: the tightening produced a lower bound larger than the upper
// bound for the pair I,J.
type InfeasibleError struct {
	I, J         int
	Lower, Upper float64
	deco         []string
}

func (err *InfeasibleError) Error() string {
	return fmt.Sprintf("smooth: infeasible restraints, pair (%d,%d) has lower bound %.4f > upper bound %.4f", err.I, err.J, err.Lower, err.Upper)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *InfeasibleError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical is always true, infeasible restraints can't be reconstructed.
func (err *InfeasibleError) Critical() bool { return true }

// TriangleError reports a triple I,J,K whose bounds violate the triangle
// inequality, as found by CheckTriangle.
type TriangleError struct {
	I, J, K int
	// Upper is true if upper(I,J) > upper(I,K)+upper(K,J), false if the
	// lower bound of I,J is the one that can be tightened.
	Upper bool
	deco  []string
}

func (err *TriangleError) Error() string {
	which := "lower"
	if err.Upper {
		which = "upper"
	}
	return fmt.Sprintf("smooth: %s bound of (%d,%d) violates the triangle inequality through %d", which, err.I, err.J, err.K)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *TriangleError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true.
func (err *TriangleError) Critical() bool { return true }

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

// errDecorate decorates err with the caller's name, if err supports it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(errorInt); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
