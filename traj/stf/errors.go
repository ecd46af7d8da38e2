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

package stf

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the general structure for stf errors.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("stf: %s (%s)", err.message, strings.Join(err.deco, " < "))
	}
	return fmt.Sprintf("stf file %s: %s (%s)", err.filename, err.message, strings.Join(err.deco, " < "))
}

// Decorate adds dec to the error's decoration and returns it.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the file to which the failing trajectory was associated.
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise.
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "trajectory not open for reading"
	TrajUnIniWrite = "trajectory not open for writing"
	NilCoordinates = "given nil coordinates"
	WrongFormat    = "wrong format in the stf file or frame"
)

// lastFrameError signals the normal end of a trajectory.
type lastFrameError struct {
	deco     []string
	fileName string
}

func newLastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}

func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

// IsLastFrame returns true if err signals the end of the trajectory.
func IsLastFrame(err error) bool {
	var l *lastFrameError
	return errors.As(err, &l)
}

type decorator interface {
	Decorate(string) []string
}

// errDecorate adds the caller's name to err, if err supports it, and returns it.
func errDecorate(err error, caller string) error {
	if d, ok := err.(decorator); ok {
		d.Decorate(caller)
	}
	return err
}
