// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package vle

import (
	"io"
	"math"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/pkg/errors"
)

// Reader creates a pod.Reader that reads from the provided io.Reader.
// If r is also an io.ByteReader single bytes are read with ReadByte.
func Reader(r io.Reader) pod.Reader {
	rd := &reader{src: r}
	rd.byteReader, _ = r.(io.ByteReader)
	return rd
}

// Writer creates a pod.Writer that writes to the supplied io.Writer.
func Writer(w io.Writer) pod.Writer {
	return &writer{dst: w}
}

type reader struct {
	src        io.Reader
	byteReader io.ByteReader
	buf        [8]byte
	offset     int64
	err        error
}

type writer struct {
	dst    io.Writer
	buf    [9]byte
	offset int64
	err    error
}

// reverse32 and reverse64 swap the byte order of floating-point bits.
func reverse32(v uint32) uint32 {
	return v<<24 | (v&0xff00)<<8 | (v>>8)&0xff00 | v>>24
}

func reverse64(v uint64) uint64 {
	return uint64(reverse32(uint32(v)))<<32 | uint64(reverse32(uint32(v>>32)))
}

func (w *writer) varint(v uint64) {
	limit, prefix, i := uint64(0x7f), byte(0), len(w.buf)-1
	for v > limit {
		w.buf[i] = byte(v)
		v >>= 8
		limit >>= 1
		prefix = prefix>>1 | 0x80
		i--
	}
	w.buf[i] = byte(v) | prefix
	w.Data(w.buf[i:])
}

func (r *reader) varint() uint64 {
	first := r.Uint8()
	extra := 0
	for extra < 8 && first&(0x80>>extra) != 0 {
		extra++
	}
	v := uint64(first & (0xff >> extra))
	if extra == 0 {
		return v
	}
	r.Data(r.buf[:extra])
	for _, b := range r.buf[:extra] {
		v = v<<8 | uint64(b)
	}
	return v
}

// Signed values are zig-zag mapped so small negative values stay short.
func (w *writer) signed(v int64) { w.varint(uint64(v<<1) ^ uint64(v>>63)) }

func (r *reader) signed() int64 {
	u := r.varint()
	return int64(u>>1) ^ -int64(u&1)
}

// narrowSigned and narrowUnsigned reject values that do not fit the
// requested width instead of truncating them.
func (r *reader) narrowSigned(bits uint) int64 {
	v := r.signed()
	if limit := int64(1) << (bits - 1); v < -limit || v >= limit {
		r.SetError(errors.Errorf("Value %d overflows int%d", v, bits))
		return 0
	}
	return v
}

func (r *reader) narrowUnsigned(bits uint) uint64 {
	v := r.varint()
	if v>>bits != 0 {
		r.SetError(errors.Errorf("Value %d overflows uint%d", v, bits))
		return 0
	}
	return v
}

func (w *writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.dst.Write(data)
	w.offset += int64(n)
	switch {
	case err != nil:
		w.err = err
	case n != len(data):
		w.err = io.ErrShortWrite
	}
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.src, p)
	r.offset += int64(n)
	r.err = err
}

func (w *writer) Uint8(v uint8) {
	w.buf[0] = v
	w.Data(w.buf[:1])
}

func (r *reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	if r.byteReader == nil {
		if r.Data(r.buf[:1]); r.err != nil {
			return 0
		}
		return r.buf[0]
	}
	b, err := r.byteReader.ReadByte()
	if err != nil {
		r.err = err
		return 0
	}
	r.offset++
	return b
}

func (w *writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

func (r *reader) Bool() bool      { return r.Uint8() != 0 }
func (w *writer) Int8(v int8)     { w.Uint8(uint8(v)) }
func (r *reader) Int8() int8      { return int8(r.Uint8()) }
func (w *writer) Int16(v int16)   { w.signed(int64(v)) }
func (r *reader) Int16() int16    { return int16(r.narrowSigned(16)) }
func (w *writer) Uint16(v uint16) { w.varint(uint64(v)) }
func (r *reader) Uint16() uint16  { return uint16(r.narrowUnsigned(16)) }
func (w *writer) Int32(v int32)   { w.signed(int64(v)) }
func (r *reader) Int32() int32    { return int32(r.narrowSigned(32)) }
func (w *writer) Uint32(v uint32) { w.varint(uint64(v)) }
func (r *reader) Uint32() uint32  { return uint32(r.narrowUnsigned(32)) }
func (w *writer) Int64(v int64)   { w.signed(v) }
func (r *reader) Int64() int64    { return r.signed() }
func (w *writer) Uint64(v uint64) { w.varint(v) }
func (r *reader) Uint64() uint64  { return r.varint() }

func (w *writer) Float32(v float32) { w.Uint32(reverse32(math.Float32bits(v))) }
func (r *reader) Float32() float32  { return math.Float32frombits(reverse32(r.Uint32())) }
func (w *writer) Float64(v float64) { w.Uint64(reverse64(math.Float64bits(v))) }
func (r *reader) Float64() float64  { return math.Float64frombits(reverse64(r.Uint64())) }

func (w *writer) String(v string) {
	w.Uint32(uint32(len(v)))
	w.Data([]byte(v))
}

func (r *reader) String() string {
	n := r.Count()
	if r.err != nil || n == 0 {
		return ""
	}
	s := make([]byte, n)
	r.Data(s)
	return string(s)
}

func (w *writer) Simple(o pod.Writable) { o.WriteSimple(w) }
func (r *reader) Simple(o pod.Readable) { o.ReadSimple(r) }

func (r *reader) Count() uint32 {
	n := r.Uint32()
	if n > pod.MaxCount {
		r.SetError(errors.Errorf("Count %d exceeds the limit of %d", n, pod.MaxCount))
		return 0
	}
	return n
}

func (w *writer) Offset() int64 { return w.offset }
func (r *reader) Offset() int64 { return r.offset }
func (w *writer) Error() error  { return w.err }
func (r *reader) Error() error  { return r.err }

func (w *writer) SetError(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (r *reader) SetError(err error) {
	if r.err == nil {
		r.err = err
	}
}
