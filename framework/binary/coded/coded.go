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

// Package coded implements pod.Reader and pod.Writer using the protocol
// buffer wire primitives.
//
// Unsigned integers are base-128 varints, signed integers are zig-zag
// varints, floating-point numbers are little-endian fixed32 / fixed64 and
// strings are varint length prefixed. 8 bit values are single raw bytes.
// The result is what a protobuf decoder would accept for the matching
// scalar field payloads, which makes streams easy to inspect with protobuf
// tooling.
package coded

import (
	"io"
	"math"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Reader creates a pod.Reader that reads from the provided io.Reader.
func Reader(r io.Reader) pod.Reader {
	return &reader{reader: r}
}

// Writer creates a pod.Writer that writes to the supplied io.Writer.
func Writer(w io.Writer) pod.Writer {
	return &writer{writer: w}
}

type reader struct {
	reader io.Reader
	tmp    [binaryMaxVarint]byte
	offset int64
	err    error
}

type writer struct {
	writer io.Writer
	tmp    [binaryMaxVarint]byte
	offset int64
	err    error
}

const binaryMaxVarint = 10

func (r *reader) varint() uint64 {
	for i := 0; i < len(r.tmp); i++ {
		r.Data(r.tmp[i : i+1])
		if r.err != nil {
			return 0
		}
		if r.tmp[i] < 0x80 {
			v, n := protowire.ConsumeVarint(r.tmp[:i+1])
			if n < 0 {
				r.SetError(protowire.ParseError(n))
				return 0
			}
			return v
		}
	}
	r.SetError(protowire.ParseError(-3))
	return 0
}

func (w *writer) varint(v uint64) {
	w.Data(protowire.AppendVarint(w.tmp[:0], v))
}

func (r *reader) zigzag() int64 {
	return protowire.DecodeZigZag(r.varint())
}

func (w *writer) zigzag(v int64) {
	w.varint(protowire.EncodeZigZag(v))
}

// signed and unsigned narrow a decoded varint to bits, failing the reader
// when the value does not fit.
func (r *reader) signed(bits uint) int64 {
	v := r.zigzag()
	if limit := int64(1) << (bits - 1); v < -limit || v >= limit {
		r.SetError(errors.Errorf("Value %d overflows int%d", v, bits))
		return 0
	}
	return v
}

func (r *reader) unsigned(bits uint) uint64 {
	v := r.varint()
	if v>>bits != 0 {
		r.SetError(errors.Errorf("Value %d overflows uint%d", v, bits))
		return 0
	}
	return v
}

func (r *reader) Data(p []byte) {
	if r.err != nil {
		return
	}
	n, err := io.ReadFull(r.reader, p)
	r.offset += int64(n)
	r.err = err
}

func (w *writer) Data(data []byte) {
	if w.err != nil {
		return
	}
	n, err := w.writer.Write(data)
	w.offset += int64(n)
	if err != nil {
		w.err = err
		return
	}
	if n != len(data) {
		w.err = io.ErrShortWrite
	}
}

func (r *reader) Bool() bool      { return r.Uint8() != 0 }
func (w *writer) Bool(v bool)     { w.Uint8(uint8(protowire.EncodeBool(v))) }
func (r *reader) Int8() int8      { return int8(r.Uint8()) }
func (w *writer) Int8(v int8)     { w.Uint8(uint8(v)) }
func (r *reader) Int16() int16    { return int16(r.signed(16)) }
func (w *writer) Int16(v int16)   { w.zigzag(int64(v)) }
func (r *reader) Uint16() uint16  { return uint16(r.unsigned(16)) }
func (w *writer) Uint16(v uint16) { w.varint(uint64(v)) }
func (r *reader) Int32() int32    { return int32(r.signed(32)) }
func (w *writer) Int32(v int32)   { w.zigzag(int64(v)) }
func (r *reader) Uint32() uint32  { return uint32(r.unsigned(32)) }
func (w *writer) Uint32(v uint32) { w.varint(uint64(v)) }
func (r *reader) Int64() int64    { return r.zigzag() }
func (w *writer) Int64(v int64)   { w.zigzag(v) }
func (r *reader) Uint64() uint64  { return r.varint() }
func (w *writer) Uint64(v uint64) { w.varint(v) }

func (r *reader) Uint8() uint8 {
	r.Data(r.tmp[:1])
	if r.err != nil {
		return 0
	}
	return r.tmp[0]
}

func (w *writer) Uint8(v uint8) {
	w.tmp[0] = v
	w.Data(w.tmp[:1])
}

func (r *reader) Float32() float32 {
	r.Data(r.tmp[:4])
	if r.err != nil {
		return 0
	}
	v, _ := protowire.ConsumeFixed32(r.tmp[:4])
	return math.Float32frombits(v)
}

func (w *writer) Float32(v float32) {
	w.Data(protowire.AppendFixed32(w.tmp[:0], math.Float32bits(v)))
}

func (r *reader) Float64() float64 {
	r.Data(r.tmp[:8])
	if r.err != nil {
		return 0
	}
	v, _ := protowire.ConsumeFixed64(r.tmp[:8])
	return math.Float64frombits(v)
}

func (w *writer) Float64(v float64) {
	w.Data(protowire.AppendFixed64(w.tmp[:0], math.Float64bits(v)))
}

func (r *reader) String() string {
	n := r.Count()
	if r.err != nil {
		return ""
	}
	s := make([]byte, n)
	r.Data(s)
	if r.err != nil {
		return ""
	}
	return string(s)
}

func (w *writer) String(v string) {
	if w.err != nil {
		return
	}
	w.Data(protowire.AppendString(nil, v))
}

func (r *reader) Simple(o pod.Readable) { o.ReadSimple(r) }
func (w *writer) Simple(o pod.Writable) { o.WriteSimple(w) }

func (r *reader) Count() uint32 {
	n := r.varint()
	if n > pod.MaxCount {
		r.SetError(errors.Errorf("Count %d exceeds the limit of %d", n, pod.MaxCount))
		return 0
	}
	return uint32(n)
}

func (r *reader) Offset() int64 { return r.offset }
func (w *writer) Offset() int64 { return w.offset }
func (r *reader) Error() error  { return r.err }
func (w *writer) Error() error  { return w.err }

func (r *reader) SetError(err error) {
	if r.err != nil {
		return
	}
	r.err = err
}

func (w *writer) SetError(err error) {
	if w.err != nil {
		return
	}
	w.err = err
}
