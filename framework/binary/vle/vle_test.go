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

package vle_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary/test"
	"github.com/google/graphcodec/framework/binary/vle"
)

var testData = []test.ReadWriteTests{
	{Name: "Bool",
		Values: []bool{true, false},
		Data:   []byte{1, 0},
	},
	{Name: "Int8",
		Values: []int8{0, 127, -128, -1},
		Data:   []byte{0x00, 0x7f, 0x80, 0xff},
	},
	{Name: "Uint8",
		Values: []uint8{0x00, 0x7f, 0x80, 0xff},
		Data:   []byte{0x00, 0x7f, 0x80, 0xff},
	},

	{Name: "Int16",
		Values: []int16{0, 32767, -32768, -1},
		Data: []byte{
			0x00,
			0xc0, 0xff, 0xfe,
			0xc0, 0xff, 0xff,
			0x01,
		}},

	{Name: "Uint16",
		Values: []uint16{0, 0xbeef, 0xc0de},
		Data: []byte{
			0x00,
			0xc0, 0xbe, 0xef,
			0xc0, 0xc0, 0xde,
		}},

	{Name: "Int32",
		Values: []int32{0, 2147483647, -2147483648, -1},
		Data: []byte{
			0x00,
			0xf0, 0xff, 0xff, 0xff, 0xfe,
			0xf0, 0xff, 0xff, 0xff, 0xff,
			0x01,
		}},

	{Name: "Uint32",
		Values: []uint32{0, 0x01234567, 0x10abcdef},
		Data: []byte{
			0x00,
			0xe1, 0x23, 0x45, 0x67,
			0xf0, 0x10, 0xab, 0xcd, 0xef,
		}},

	{Name: "Int64",
		Values: []int64{0, 9223372036854775807, -9223372036854775808, -1},
		Data: []byte{
			0x00,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0x01,
		}},

	{Name: "Uint64",
		Values: []uint64{0, 0x0123456789abcdef, 0xfedcba9876543210, 0xffffffff},
		Data: []byte{
			0x00,
			0xff, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
			0xff, 0xfe, 0xdc, 0xba, 0x98, 0x76, 0x54, 0x32, 0x10,
			0xf0, 0xff, 0xff, 0xff, 0xff,
		}},

	{Name: "Float32",
		Values: []float32{0, 1, 64.5},
		Data: []byte{
			0x00,
			0xc0, 0x80, 0x3f,
			0xc0, 0x81, 0x42,
		}},

	{Name: "Float64",
		Values: []float64{0, 1, 64.5},
		Data: []byte{
			0x00,
			0xc0, 0xf0, 0x3f,
			0xe0, 0x20, 0x50, 0x40,
		}},

	{Name: "String",
		Values: []string{
			"Hello",
			"",
			"World",
			"こんにちは世界",
		},
		Data: []byte{
			0x05, 'H', 'e', 'l', 'l', 'o',
			0x00,
			0x05, 'W', 'o', 'r', 'l', 'd',
			0x15, 0xe3, 0x81, 0x93, 0xe3, 0x82, 0x93, 0xe3, 0x81, 0xab, 0xe3, 0x81, 0xa1, 0xe3, 0x81, 0xaf, 0xe4, 0xb8, 0x96, 0xe7, 0x95, 0x8c,
		}},
}

func factory(r io.Reader, w io.Writer) (pod.Reader, pod.Writer) {
	return vle.Reader(r), vle.Writer(w)
}

func TestReadWrite(t *testing.T) {
	ctx := log.Testing(t)
	test.ReadWrite(ctx, testData, factory)
}

func TestData(t *testing.T) {
	ctx := log.Testing(t)
	test.ReadWriteData(ctx, testData, factory)
}

func TestCount(t *testing.T) {
	values := []uint32{0, 0x1234, 0xfedcb}
	raw := []byte{
		0x00,
		0x92, 0x34,
		0xcf, 0xed, 0xcb,
	}

	ctx := log.Testing(t)
	test.ReadWriteCount(ctx, values, raw, factory)
}

func TestSimple(t *testing.T) {
	values := []test.Simple{test.Simple(0), test.Simple(127), test.Simple(-128), test.Simple(-1)}
	raw := []byte{0x00, 0x7f, 0x80, 0xff}
	ctx := log.Testing(t)
	test.ReadWriteSimple(ctx, values, raw, factory)
}

func TestSetErrors(t *testing.T) {
	ctx := log.Testing(t)
	test.ReadWriteErrors(ctx, testData, factory)
}

func TestIOErrors(t *testing.T) {
	ctx := log.Testing(t)
	test.ReadWriteIOErrors(ctx, testData, factory)
}

func TestCountLimit(t *testing.T) {
	ctx := log.Testing(t)
	b := &bytes.Buffer{}
	r, w := factory(b, b)
	w.Uint32(pod.MaxCount + 1)
	w.String("tail")
	assert.For(ctx, "count").That(r.Count()).Equals(uint32(0))
	assert.For(ctx, "err").ThatError(r.Error()).Failed()
	assert.For(ctx, "after").ThatString(r.String()).Equals("")
}

func TestOutOfRange(t *testing.T) {
	ctx := log.Testing(t)
	b := &bytes.Buffer{}
	r, w := factory(b, b)
	w.Uint64(1 << 32)
	w.Uint32(7)
	assert.For(ctx, "uint32").That(r.Uint32()).Equals(uint32(0))
	assert.For(ctx, "err").ThatError(r.Error()).Failed()

	b.Reset()
	r, w = factory(b, b)
	w.Int64(1 << 31)
	assert.For(ctx, "int32").That(r.Int32()).Equals(int32(0))
	assert.For(ctx, "err").ThatError(r.Error()).Failed()

	b.Reset()
	r, w = factory(b, b)
	w.Int64(-1 << 15)
	w.Uint64(1 << 16)
	assert.For(ctx, "min int16").That(r.Int16()).Equals(int16(-1 << 15))
	assert.For(ctx, "err").ThatError(r.Error()).Succeeded()
	assert.For(ctx, "uint16").That(r.Uint16()).Equals(uint16(0))
	assert.For(ctx, "err").ThatError(r.Error()).Failed()
}

func TestTagSizes(t *testing.T) {
	ctx := log.Testing(t)
	for _, v := range []int64{0, -1} {
		b := &bytes.Buffer{}
		_, w := factory(b, b)
		w.Int64(v)
		assert.For(ctx, "size of %d", v).ThatInteger(b.Len()).Equals(1)
	}
}
