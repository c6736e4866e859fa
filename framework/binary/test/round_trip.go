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

	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/vle"
	"github.com/pkg/errors"
)

// Encode serializes value with a new context over registry.
func Encode(registry binary.Registry, value interface{}, memoize bool) ([]byte, error) {
	ctx := binary.NewSerializationContext(registry, nil)
	if memoize {
		var err error
		if ctx, err = ctx.NewMemoizingContext(); err != nil {
			return nil, err
		}
	}
	buf := &bytes.Buffer{}
	if err := ctx.Serialize(value, vle.Writer(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes a single value from data, which it must consume
// entirely.
func Decode(registry binary.Registry, data []byte, memoize bool) (interface{}, error) {
	ctx := binary.NewDeserializationContext(registry, nil)
	if memoize {
		var err error
		if ctx, err = ctx.NewMemoizingContext(); err != nil {
			return nil, err
		}
	}
	buf := bytes.NewBuffer(data)
	value, err := ctx.Deserialize(vle.Reader(buf))
	if err != nil {
		return nil, err
	}
	if buf.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes after the value", buf.Len())
	}
	return value, nil
}

// RoundTrip encodes and decodes value without memoization, returning the
// decoded value and the stream.
func RoundTrip(registry binary.Registry, value interface{}) (interface{}, []byte, error) {
	return roundTrip(registry, value, false)
}

// RoundTripMemoized encodes and decodes value through memoizing contexts.
func RoundTripMemoized(registry binary.Registry, value interface{}) (interface{}, []byte, error) {
	return roundTrip(registry, value, true)
}

func roundTrip(registry binary.Registry, value interface{}, memoize bool) (interface{}, []byte, error) {
	data, err := Encode(registry, value, memoize)
	if err != nil {
		return nil, nil, err
	}
	got, err := Decode(registry, data, memoize)
	return got, data, err
}
