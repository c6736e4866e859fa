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

package coded_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary/coded"
	"github.com/google/graphcodec/framework/binary/test"
	"google.golang.org/protobuf/encoding/protowire"
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
			0xfe, 0xff, 0x03,
			0xff, 0xff, 0x03,
			0x01,
		}},

	{Name: "Uint16",
		Values: []uint16{0, 0xbeef, 0xc0de},
		Data: []byte{
			0x00,
			0xef, 0xfd, 0x02,
			0xde, 0x81, 0x03,
		}},

	{Name: "Int32",
		Values: []int32{0, 2147483647, -2147483648, -1},
		Data: []byte{
			0x00,
			0xfe, 0xff, 0xff, 0xff, 0x0f,
			0xff, 0xff, 0xff, 0xff, 0x0f,
			0x01,
		}},

	{Name: "Uint32",
		Values: []uint32{0, 0x01234567, 0x10abcdef},
		Data: []byte{
			0x00,
			0xe7, 0x8a, 0x8d, 0x09,
			0xef, 0x9b, 0xaf, 0x85, 0x01,
		}},

	{Name: "Int64",
		Values: []int64{0, 9223372036854775807, -9223372036854775808, -1},
		Data: []byte{
			0x00,
			0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01,
			0x01,
		}},

	{Name: "Uint64",
		Values: []uint64{0, 0x0123456789abcdef, 0xfedcba9876543210, 0xffffffff},
		Data: []byte{
			0x00,
			0xef, 0x9b, 0xaf, 0xcd, 0xf8, 0xac, 0xd1, 0x91, 0x01,
			0x90, 0xe4, 0xd0, 0xb2, 0x87, 0xd3, 0xae, 0xee, 0xfe, 0x01,
			0xff, 0xff, 0xff, 0xff, 0x0f,
		}},

	{Name: "Float32",
		Values: []float32{0, 1, 64.5},
		Data: []byte{
			0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x80, 0x3f,
			0x00, 0x00, 0x81, 0x42,
		}},

	{Name: "Float64",
		Values: []float64{0, 1, 64.5},
		Data: []byte{
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f,
			0x00, 0x00, 0x00, 0x00, 0x00, 0x20, 0x50, 0x40,
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
	return coded.Reader(r), coded.Writer(w)
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
		0xb4, 0x24,
		0xcb, 0xdb, 0x3f,
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

func TestOverlongVarint(t *testing.T) {
	ctx := log.Testing(t)
	raw := bytes.Repeat([]byte{0xff}, 11)
	r := coded.Reader(bytes.NewReader(raw))
	assert.For(ctx, "value").That(r.Uint64()).Equals(uint64(0))
	assert.For(ctx, "err").ThatError(r.Error()).Failed()
}

func TestOutOfRange(t *testing.T) {
	ctx := log.Testing(t)
	for _, c := range []struct {
		name string
		raw  []byte
		read func(pod.Reader) interface{}
		zero interface{}
	}{
		{"Int16 above", protowire.AppendVarint(nil, protowire.EncodeZigZag(1<<15)),
			func(r pod.Reader) interface{} { return r.Int16() }, int16(0)},
		{"Int16 below", protowire.AppendVarint(nil, protowire.EncodeZigZag(-1<<15-1)),
			func(r pod.Reader) interface{} { return r.Int16() }, int16(0)},
		{"Uint16", protowire.AppendVarint(nil, 1<<16),
			func(r pod.Reader) interface{} { return r.Uint16() }, uint16(0)},
		{"Int32 above", protowire.AppendVarint(nil, protowire.EncodeZigZag(1<<32+1)),
			func(r pod.Reader) interface{} { return r.Int32() }, int32(0)},
		{"Int32 below", protowire.AppendVarint(nil, protowire.EncodeZigZag(-1<<31-1)),
			func(r pod.Reader) interface{} { return r.Int32() }, int32(0)},
		{"Uint32", protowire.AppendVarint(nil, 1<<32),
			func(r pod.Reader) interface{} { return r.Uint32() }, uint32(0)},
		{"Count", protowire.AppendVarint(nil, pod.MaxCount+1),
			func(r pod.Reader) interface{} { return r.Count() }, uint32(0)},
	} {
		ctx := log.V{"case": c.name}.Bind(ctx)
		r := coded.Reader(bytes.NewReader(c.raw))
		assert.For(ctx, "value").That(c.read(r)).Equals(c.zero)
		assert.For(ctx, "err").ThatError(r.Error()).Failed()
	}

	r := coded.Reader(bytes.NewReader(protowire.AppendVarint(nil, protowire.EncodeZigZag(-1<<31))))
	assert.For(ctx, "min int32").That(r.Int32()).Equals(int32(-1 << 31))
	assert.For(ctx, "err").ThatError(r.Error()).Succeeded()
}

func TestProtowireCompatible(t *testing.T) {
	ctx := log.Testing(t)
	b := &bytes.Buffer{}
	w := coded.Writer(b)
	w.Int64(-42)
	w.String("graph")
	w.Uint64(300)
	assert.For(ctx, "write").ThatError(w.Error()).Succeeded()

	data := b.Bytes()
	v, n := protowire.ConsumeVarint(data)
	assert.For(ctx, "zigzag").That(protowire.DecodeZigZag(v)).Equals(int64(-42))
	data = data[n:]
	s, n := protowire.ConsumeString(data)
	assert.For(ctx, "string").ThatString(s).Equals("graph")
	data = data[n:]
	v, n = protowire.ConsumeVarint(data)
	assert.For(ctx, "uint").That(v).Equals(uint64(300))
	assert.For(ctx, "rest").ThatInteger(len(data) - n).Equals(0)
}
