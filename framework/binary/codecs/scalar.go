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

// Package codecs provides binary.Codec implementations for Go builtin types,
// protocol buffer messages and CBOR encoded leaf values.
package codecs

import (
	"reflect"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary"
)

// scalar is a codec for a value written with a single pod call.
type scalar struct {
	t        reflect.Type
	strategy binary.Strategy
	write    func(interface{}, pod.Writer)
	read     func(pod.Reader) interface{}
}

func (c *scalar) Type() reflect.Type        { return c.t }
func (c *scalar) Strategy() binary.Strategy { return c.strategy }

func (c *scalar) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	c.write(value, w)
	return nil
}

func (c *scalar) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	return c.read(r), nil
}

// String returns the codec for string.
func String() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(""),
		write: func(v interface{}, w pod.Writer) { w.String(v.(string)) },
		read:  func(r pod.Reader) interface{} { return r.String() },
	}
}

// Bool returns the codec for bool.
func Bool() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(false),
		write: func(v interface{}, w pod.Writer) { w.Bool(v.(bool)) },
		read:  func(r pod.Reader) interface{} { return r.Bool() },
	}
}

// Int returns the codec for int, which is written as 64 bits.
func Int() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(int(0)),
		write: func(v interface{}, w pod.Writer) { w.Int64(int64(v.(int))) },
		read:  func(r pod.Reader) interface{} { return int(r.Int64()) },
	}
}

// Int64 returns the codec for int64.
func Int64() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(int64(0)),
		write: func(v interface{}, w pod.Writer) { w.Int64(v.(int64)) },
		read:  func(r pod.Reader) interface{} { return r.Int64() },
	}
}

// Uint64 returns the codec for uint64.
func Uint64() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(uint64(0)),
		write: func(v interface{}, w pod.Writer) { w.Uint64(v.(uint64)) },
		read:  func(r pod.Reader) interface{} { return r.Uint64() },
	}
}

// Float64 returns the codec for float64.
func Float64() binary.Codec {
	return &scalar{
		t:     reflect.TypeOf(float64(0)),
		write: func(v interface{}, w pod.Writer) { w.Float64(v.(float64)) },
		read:  func(r pod.Reader) interface{} { return r.Float64() },
	}
}

// Bytes returns the codec for []byte. Byte slices are mutable, so shared
// slices are memoized to keep their aliasing.
func Bytes() binary.Codec {
	return &scalar{
		t:        reflect.TypeOf([]byte{}),
		strategy: binary.MemoizeAfter,
		write: func(v interface{}, w pod.Writer) {
			b := v.([]byte)
			w.Uint32(uint32(len(b)))
			w.Data(b)
		},
		read: func(r pod.Reader) interface{} {
			b := make([]byte, r.Count())
			r.Data(b)
			return b
		},
	}
}
