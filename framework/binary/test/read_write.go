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

package test

import (
	"bytes"
	"context"
	"io"
	"reflect"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/core/log"
)

// ReadWriteTests is a list of values for the pod method Name, and the bytes
// they encode to.
type ReadWriteTests struct {
	Name   string
	Values interface{}
	Data   []byte
}

// Factory builds a pod reader and writer over the supplied streams.
type Factory func(io.Reader, io.Writer) (pod.Reader, pod.Writer)

// ReadWrite writes every value with the named method, checks the bytes, then
// reads them all back.
func ReadWrite(ctx context.Context, tests []ReadWriteTests, factory Factory) {
	for _, e := range tests {
		ctx := log.V{"name": e.Name}.Bind(ctx)
		b := &bytes.Buffer{}
		reader, writer := factory(b, b)
		r := reflect.ValueOf(reader).MethodByName(e.Name)
		w := reflect.ValueOf(writer).MethodByName(e.Name)
		s := reflect.ValueOf(e.Values)
		for i := 0; i < s.Len(); i++ {
			w.Call([]reflect.Value{s.Index(i)})
		}
		assert.For(ctx, "bytes").ThatBytes(b.Bytes()).Equals(e.Data)
		for i := 0; i < s.Len(); i++ {
			ctx := log.V{"index": i}.Bind(ctx)
			expected := s.Index(i)
			got := r.Call(nil)[0]
			assert.For(ctx, "read error").ThatError(reader.Error()).Succeeded()
			assert.For(ctx, "value").That(got.Interface()).Equals(expected.Interface())
		}
	}
}

// ReadWriteData checks that raw data passes through unchanged.
func ReadWriteData(ctx context.Context, tests []ReadWriteTests, factory Factory) {
	for _, e := range tests {
		ctx := log.V{"name": e.Name}.Bind(ctx)
		b := &bytes.Buffer{}
		reader, writer := factory(b, b)
		writer.Data(e.Data)
		assert.For(ctx, "written").ThatBytes(b.Bytes()).Equals(e.Data)
		assert.For(ctx, "write offset").That(writer.Offset()).Equals(int64(len(e.Data)))
		got := make([]byte, len(e.Data))
		reader.Data(got)
		assert.For(ctx, "result").ThatBytes(got).Equals(e.Data)
		assert.For(ctx, "read offset").That(reader.Offset()).Equals(int64(len(e.Data)))
	}
}

// ReadWriteCount checks that counts are read back from uint32 writes.
func ReadWriteCount(ctx context.Context, values []uint32, raw []byte, factory Factory) {
	b := &bytes.Buffer{}
	reader, writer := factory(b, b)
	for _, v := range values {
		writer.Uint32(v)
	}
	assert.For(ctx, "bytes").ThatBytes(b.Bytes()).Equals(raw)
	for _, expect := range values {
		got := reader.Count()
		assert.For(ctx, "count").That(got).Equals(expect)
	}
}

// ReadWriteSimple checks the Simple round trip.
func ReadWriteSimple(ctx context.Context, values []Simple, raw []byte, factory Factory) {
	b := &bytes.Buffer{}
	reader, writer := factory(b, b)
	for _, v := range values {
		writer.Simple(v)
	}
	assert.For(ctx, "bytes").ThatBytes(b.Bytes()).Equals(raw)
	for _, expect := range values {
		var got Simple
		reader.Simple(&got)
		assert.For(ctx, "simple").That(got).Equals(expect)
	}
}

// ReadWriteErrors checks that SetError is sticky and keeps the first error.
func ReadWriteErrors(ctx context.Context, tests []ReadWriteTests, factory Factory) {
	for _, e := range tests {
		ctx := log.V{"name": e.Name}.Bind(ctx)
		b := &bytes.Buffer{}
		reader, writer := factory(b, b)
		r := reflect.ValueOf(reader).MethodByName(e.Name)
		w := reflect.ValueOf(writer).MethodByName(e.Name)
		s := reflect.ValueOf(e.Values)
		writer.SetError(WriteError)
		w.Call([]reflect.Value{s.Index(0)})
		assert.For(ctx, "write error").ThatError(writer.Error()).Equals(WriteError)
		writer.SetError(SecondError)
		w.Call([]reflect.Value{s.Index(0)})
		assert.For(ctx, "second write error").ThatError(writer.Error()).Equals(WriteError)
		reader.SetError(ReadError)
		r.Call(nil)
		assert.For(ctx, "read error").ThatError(reader.Error()).Equals(ReadError)
		reader.SetError(SecondError)
		r.Call(nil)
		assert.For(ctx, "second read error").ThatError(reader.Error()).Equals(ReadError)
		assert.For(ctx, "nothing written").ThatInteger(b.Len()).Equals(0)
	}
}

// ReadWriteIOErrors checks that failures of the underlying streams surface.
func ReadWriteIOErrors(ctx context.Context, tests []ReadWriteTests, factory Factory) {
	for _, e := range tests {
		ctx := log.V{"name": e.Name}.Bind(ctx)
		reader, writer := factory(&Bytes{}, &LimitedWriter{})
		r := reflect.ValueOf(reader).MethodByName(e.Name)
		w := reflect.ValueOf(writer).MethodByName(e.Name)
		s := reflect.ValueOf(e.Values)
		w.Call([]reflect.Value{s.Index(0)})
		assert.For(ctx, "write error").ThatError(writer.Error()).Equals(WriteError)
		r.Call(nil)
		assert.For(ctx, "read error").ThatError(reader.Error()).Equals(ReadError)
	}
	reader, writer := factory(&Bytes{Data: []byte{1}}, &LimitedWriter{Limit: 1})
	data := []byte{1, 2}
	writer.Data(data)
	assert.For(ctx, "short write").ThatError(writer.Error()).Equals(io.ErrShortWrite)
	reader.Data(data)
	assert.For(ctx, "short read").ThatError(reader.Error()).Equals(ReadError)
}
