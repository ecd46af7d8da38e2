/*
 * stf.go, part of dgeom.
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/eppic-team/owl-sub005/v3"
	"github.com/klauspost/compress/zstd"
)

// DefaultPrec is the number of decimal places stored for each coordinate
// when the header doesn't say otherwise.
const DefaultPrec = 3

// gzipped returns true if name should be gzip-compressed instead of zstd-compressed.
func gzipped(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), "z")
}

// Writer writes models, one per frame, to a compressed stf stream.
type Writer struct {
	f         *os.File //nil if the writer wasn't opened with Create
	h         io.WriteCloser
	w         *bufio.Writer
	npoints   int
	name      string
	prec      int
	writeable bool
	frames    int
}

// NewWriter returns a zstd-compressed stf Writer for frames of npoints points,
// writing to out. The header, if not nil, is written in key order. The "prec"
// key sets the number of decimal places kept for each coordinate.
func NewWriter(out io.Writer, npoints int, header map[string]string) (*Writer, error) {
	h, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, &Error{message: "can't start compressor: " + err.Error(), deco: []string{"NewWriter"}, critical: true}
	}
	S, err := newWriter(h, npoints, header, "")
	if err != nil {
		h.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	return S, nil
}

// Create creates the file name and returns a Writer to it. Names ending
// in "z" (such as model.stfz) are gzip-compressed, the rest zstd-compressed.
func Create(name string, npoints int, header map[string]string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &Error{message: err.Error(), filename: name, deco: []string{"Create"}, critical: true}
	}
	var h io.WriteCloser
	if gzipped(name) {
		h, err = gzip.NewWriterLevel(f, gzip.BestCompression)
	} else {
		h, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	if err != nil {
		f.Close()
		return nil, &Error{message: "can't start compressor: " + err.Error(), filename: name, deco: []string{"Create"}, critical: true}
	}
	S, err := newWriter(h, npoints, header, name)
	if err != nil {
		h.Close()
		f.Close()
		return nil, errDecorate(err, "Create")
	}
	S.f = f
	return S, nil
}

func newWriter(h io.WriteCloser, npoints int, header map[string]string, name string) (*Writer, error) {
	if npoints < 1 {
		return nil, &Error{message: fmt.Sprintf("invalid number of points %d", npoints), filename: name, deco: []string{"newWriter"}, critical: true}
	}
	S := &Writer{h: h, w: bufio.NewWriter(h), npoints: npoints, name: name, prec: DefaultPrec, writeable: true}
	header = copyHeader(header)
	if p, ok := header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 || prec > 6 {
			return nil, &Error{message: "invalid precision " + p, filename: name, deco: []string{"newWriter"}, critical: true}
		}
		S.prec = prec
	} else {
		header["prec"] = strconv.Itoa(S.prec)
	}
	keys := make([]string, 0, len(header))
	for k, v := range header {
		if k == "" || strings.ContainsAny(k, "=\n*") || strings.Contains(v, "\n") {
			return nil, &Error{message: fmt.Sprintf("invalid header entry %q", k), filename: name, deco: []string{"newWriter"}, critical: true}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(S.w, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(S.w, "** %d\n", npoints)
	return S, nil
}

func copyHeader(h map[string]string) map[string]string {
	ret := make(map[string]string, len(h)+1)
	for k, v := range h {
		ret[k] = v
	}
	return ret
}

// Len returns the number of points in each frame.
func (S *Writer) Len() int { return S.npoints }

// Frames returns the number of frames written so far.
func (S *Writer) Frames() int { return S.frames }

// WNext writes coord as the next frame. The tag, if given, is stored in the
// frame termination line, and returned by Reader.Next.
func (S *Writer) WNext(coord *v3.Matrix, tag ...string) error {
	if !S.writeable {
		return &Error{message: TrajUnIniWrite, filename: S.name, deco: []string{"WNext"}, critical: true}
	}
	if coord == nil {
		return &Error{message: NilCoordinates, filename: S.name, deco: []string{"WNext"}, critical: true}
	}
	if v := coord.NVecs(); v != S.npoints {
		return &Error{message: fmt.Sprintf("%d coordinates given, but %d expected", v, S.npoints), filename: S.name, deco: []string{"WNext"}, critical: true}
	}
	p := math.Pow(10, float64(S.prec))
	for i := 0; i < S.npoints; i++ {
		fmt.Fprintf(S.w, "%d %d %d\n", int64(math.RoundToEven(coord.At(i, 0)*p)), int64(math.RoundToEven(coord.At(i, 1)*p)), int64(math.RoundToEven(coord.At(i, 2)*p)))
	}
	if len(tag) > 0 && tag[0] != "" {
		if strings.Contains(tag[0], "\n") {
			return &Error{message: "frame tag with a newline", filename: S.name, deco: []string{"WNext"}, critical: true}
		}
		fmt.Fprintf(S.w, "* %s\n", tag[0])
	} else {
		fmt.Fprint(S.w, "*\n")
	}
	S.frames++
	return nil
}

// Close flushes the frames and closes the compressor, and the file, if the
// writer was obtained with Create. The Writer can't be used afterwards.
func (S *Writer) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.w.Flush()
	if err2 := S.h.Close(); err == nil {
		err = err2
	}
	if S.f != nil {
		if err2 := S.f.Close(); err == nil {
			err = err2
		}
	}
	if err != nil {
		return &Error{message: err.Error(), filename: S.name, deco: []string{"Close"}, critical: true}
	}
	return nil
}

// zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// Reader reads the frames of an stf stream.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	npoints  int
	name     string
	prec     int
	readable bool
}

// NewReader reads the header of the zstd-compressed stf stream in and returns
// a Reader for its frames, and the header.
func NewReader(in io.Reader) (*Reader, map[string]string, error) {
	d, err := zstd.NewReader(in)
	if err != nil {
		return nil, nil, &Error{message: "can't start decompressor: " + err.Error(), deco: []string{"NewReader"}, critical: true}
	}
	S := &Reader{dec: zstdCloser{d}}
	m, err := S.readHeader()
	if err != nil {
		S.dec.Close()
		return nil, nil, errDecorate(err, "NewReader")
	}
	return S, m, nil
}

// Open opens the stf file name for reading. Names ending in "z" are
// read as gzip-compressed, the rest as zstd-compressed.
func Open(name string) (*Reader, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, &Error{message: err.Error(), filename: name, deco: []string{"Open"}, critical: true}
	}
	S := &Reader{f: f, name: name}
	if gzipped(name) {
		S.dec, err = gzip.NewReader(bufio.NewReader(f))
	} else {
		var d *zstd.Decoder
		d, err = zstd.NewReader(bufio.NewReader(f))
		if err == nil {
			S.dec = zstdCloser{d}
		}
	}
	if err != nil {
		f.Close()
		return nil, nil, &Error{message: "can't start decompressor: " + err.Error(), filename: name, deco: []string{"Open"}, critical: true}
	}
	m, err := S.readHeader()
	if err != nil {
		S.dec.Close()
		f.Close()
		return nil, nil, errDecorate(err, "Open")
	}
	return S, m, nil
}

func (S *Reader) readHeader() (map[string]string, error) {
	S.h = bufio.NewReader(S.dec)
	S.prec = DefaultPrec
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, &Error{message: "can't read header: " + err.Error(), filename: S.name, deco: []string{"readHeader"}, critical: true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			fields := strings.Fields(str)
			if len(fields) < 2 {
				return nil, &Error{message: fmt.Sprintf("%s: no number of points in '%s'", WrongFormat, str), filename: S.name, deco: []string{"readHeader"}, critical: true}
			}
			S.npoints, err = strconv.Atoi(fields[1])
			if err != nil || S.npoints < 1 {
				return nil, &Error{message: fmt.Sprintf("%s: invalid number of points '%s'", WrongFormat, fields[1]), filename: S.name, deco: []string{"readHeader"}, critical: true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			return nil, &Error{message: fmt.Sprintf("%s: malformed header line '%s'", WrongFormat, str), filename: S.name, deco: []string{"readHeader"}, critical: true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec < 0 {
			return nil, &Error{message: "invalid precision " + p, filename: S.name, deco: []string{"readHeader"}, critical: true}
		}
		S.prec = prec
	}
	S.readable = true
	return m, nil
}

// Readable returns true if Next can be called on the Reader.
func (S *Reader) Readable() bool { return S.readable }

// Len returns the number of points in each frame.
func (S *Reader) Len() int { return S.npoints }

func decode(str string, temp *[3]float64, p float64) error {
	s := strings.Fields(str)
	if len(s) != 3 {
		return fmt.Errorf("%s: %d fields in coordinates line '%s'", WrongFormat, len(s), str)
	}
	for i, v := range s {
		f, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: can't parse coordinate %d (%s): %s", WrongFormat, i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

// Next reads the next frame into c, and returns the frame's tag ("" if it has
// none). If c is nil, the frame is checked but discarded. At the end of the
// stream, Next returns an error for which IsLastFrame is true, and closes the Reader.
func (S *Reader) Next(c *v3.Matrix) (string, error) {
	if !S.readable {
		return "", &Error{message: TrajUnIniRead, filename: S.name, deco: []string{"Next"}, critical: true}
	}
	if c != nil && c.NVecs() != S.npoints {
		return "", &Error{message: fmt.Sprintf("matrix for %d points given, but frames have %d", c.NVecs(), S.npoints), filename: S.name, deco: []string{"Next"}, critical: true}
	}
	var temp [3]float64
	p := math.Pow(10, float64(S.prec))
	for i := 0; i < S.npoints; i++ {
		str, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && i == 0 && str == "" {
				S.Close()
				return "", newLastFrameError(S.name, "Next")
			}
			return "", &Error{message: "truncated frame: " + err.Error(), filename: S.name, deco: []string{"Next"}, critical: true}
		}
		if err := decode(strings.TrimSuffix(str, "\n"), &temp, p); err != nil {
			return "", &Error{message: err.Error(), filename: S.name, deco: []string{"Next"}, critical: true}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil {
		return "", &Error{message: "can't read the frame termination mark: " + err.Error(), filename: S.name, deco: []string{"Next"}, critical: true}
	}
	if !strings.HasPrefix(s, "*") {
		return "", &Error{message: WrongFormat + ": wrong number of points in frame", filename: S.name, deco: []string{"Next"}, critical: true}
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "*")), nil
}

// ReadAll reads all the remaining frames and their tags.
func (S *Reader) ReadAll() ([]*v3.Matrix, []string, error) {
	var frames []*v3.Matrix
	var tags []string
	for {
		c := v3.Zeros(S.npoints)
		tag, err := S.Next(c)
		if err != nil {
			if IsLastFrame(err) {
				return frames, tags, nil
			}
			return nil, nil, errDecorate(err, "ReadAll")
		}
		frames = append(frames, c)
		tags = append(tags, tag)
	}
}

// Close closes the Reader, which can't be used afterwards.
func (S *Reader) Close() {
	if !S.readable {
		return
	}
	S.dec.Close()
	if S.f != nil {
		S.f.Close()
	}
	S.readable = false
}
