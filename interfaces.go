/*
 * interfaces.go, part of dgeom.
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

package dgeom

import (
	"fmt"
	"strings"

	v3 "github.com/eppic-team/owl-sub005/v3"
)

// Coorder is anything that can give the coordinates of a conformation, such
// as a Model or a reference structure.
type Coorder interface {
	Coords() *v3.Matrix
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds the caller (plus, maybe, some info in the format "FunctionName: Extra info") when the error is passed up. An empty string just returns the current slice.
	Critical() bool
}

// errDecorate decorates err with the caller's name, if err implements Error,
// and returns it.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

// CError is a critical error of the dgeom package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return "dgeom: " + err.msg }

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true.
func (err *CError) Critical() bool { return true }

// ViolationError is returned in strict mode when a model violates its restraints.
type ViolationError struct {
	Model   int
	Lower   int //lower bound violations against the restraints
	Upper   int //upper bound violations against the restraints
	Against string
	deco    []string
}

func (err *ViolationError) Error() string {
	return fmt.Sprintf("dgeom: model %d has %d lower and %d upper bound violations against the %s", err.Model, err.Lower, err.Upper, err.Against)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *ViolationError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical returns true.
func (err *ViolationError) Critical() bool { return true }

// ErrorTrace returns the chain of callers recorded in err, if err implements
// Error, as a single line.
func ErrorTrace(err error) string {
	if e, ok := err.(Error); ok {
		return strings.Join(e.Decorate(""), " <- ")
	}
	return ""
}
