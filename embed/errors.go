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

package embed

import "fmt"

// Error is the generic error type of the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err *Error) Error() string {
	return "embed: " + err.message
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

// DegenerateError reports an embedding of a distance matrix that is far from
// Euclidean. It is not critical: the coordinates returned with it are the best
// effort embedding, built with the negative eigenvalues clamped to 0.
type DegenerateError struct {
	NegativeMass float64 //fraction of the eigenvalue mass that is negative
	Tolerance    float64
	deco         []string
}

func (err *DegenerateError) Error() string {
	return fmt.Sprintf("embed: degenerate embedding, %.1f%% of the eigenvalue mass is negative (tolerance %.1f%%)", 100*err.NegativeMass, 100*err.Tolerance)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *DegenerateError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns false.
func (err *DegenerateError) Critical() bool { return false }

type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	if err2, ok := err.(errorInt); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
