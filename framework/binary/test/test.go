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

// Package test holds fixtures shared by the graph serialization tests:
// byte builders, failing readers and writers, expected-stream entries and
// round-trip helpers.
package test

import (
	"context"
	"io"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/core/fault"
)

const (
	ReadError   = fault.Const("ReadError")
	WriteError  = fault.Const("WriteError")
	SecondError = fault.Const("SecondError")
)

// Simple is a pod.Readable and pod.Writable single byte value.
type Simple int8

func (s *Simple) ReadSimple(r pod.Reader) { *s = Simple(r.Uint8()) }
func (s Simple) WriteSimple(w pod.Writer) { w.Uint8(byte(s)) }

// Bytes is a byte builder, and an io.Reader / io.Writer over its data.
// Reading past the end fails with ReadError rather than io.EOF so tests can
// tell a truncated stream from a clean end.
type Bytes struct {
	Data []byte
}

// Add returns a copy of b with the bytes appended.
func (b Bytes) Add(data ...byte) Bytes {
	b.Data = append(append([]byte{}, b.Data...), data...)
	return b
}

func (b *Bytes) Read(p []byte) (int, error) {
	if len(b.Data) == 0 {
		return 0, ReadError
	}
	n := copy(p, b.Data)
	b.Data = b.Data[n:]
	return n, nil
}

func (b *Bytes) Write(p []byte) (int, error) {
	b.Data = append(b.Data, p...)
	return len(p), nil
}

// LimitedWriter accepts at most Limit bytes. A write that finds no space
// left fails with WriteError, a write that partially fits is truncated.
type LimitedWriter struct {
	Limit int
}

func (w *LimitedWriter) Write(p []byte) (int, error) {
	if w.Limit <= 0 {
		return 0, WriteError
	}
	n := len(p)
	if n > w.Limit {
		n = w.Limit
	}
	w.Limit -= n
	return n, nil
}

var _ io.ReadWriter = &Bytes{}

// Entry is a named list of values and the exact stream they must encode to.
type Entry struct {
	Name   string
	Values []interface{}
	Data   []byte
}

// VerifyData checks that got holds exactly the bytes of entry.
func VerifyData(ctx context.Context, entry Entry, got []byte) bool {
	return assert.For(ctx, "%v stream", entry.Name).ThatBytes(got).Equals(entry.Data)
}
