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

// Package graph serializes whole values to byte slices and streams through
// a codec registry.
package graph

import (
	"bytes"
	"context"
	"io"
	"reflect"

	"github.com/google/graphcodec/core/fault"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/registry"
	"github.com/pkg/errors"
)

// ErrTrailingData is returned when a byte slice holds more than one value.
const ErrTrailingData = fault.Const("Trailing data after value")

// Codecs serializes values with a registry. It is safe for concurrent use;
// every call gets its own contexts.
type Codecs struct {
	registry     *registry.Registry
	format       Format
	dependencies map[reflect.Type]interface{}
}

// Option configures Codecs.
type Option func(*Codecs)

// WithFormat selects the wire primitives. The default is VLE.
func WithFormat(f Format) Option {
	return func(c *Codecs) { c.format = f }
}

// WithDependencies makes values available to codecs through the contexts'
// Dependency method, keyed by each value's type.
func WithDependencies(values ...interface{}) Option {
	return func(c *Codecs) {
		for _, v := range values {
			c.dependencies[reflect.TypeOf(v)] = v
		}
	}
}

// New returns Codecs over r.
func New(r *registry.Registry, opts ...Option) *Codecs {
	c := &Codecs{
		registry:     r,
		format:       VLE,
		dependencies: map[reflect.Type]interface{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the registry the codecs use.
func (c *Codecs) Registry() *registry.Registry { return c.registry }

// Format returns the wire primitives the codecs write.
func (c *Codecs) Format() Format { return c.format }

// Serialize encodes value without memoization.
func (c *Codecs) Serialize(ctx context.Context, value interface{}) ([]byte, error) {
	return c.serialize(ctx, value, false)
}

// SerializeMemoized encodes value in a memoizing context, so shared and
// cyclic structure is kept.
func (c *Codecs) SerializeMemoized(ctx context.Context, value interface{}) ([]byte, error) {
	return c.serialize(ctx, value, true)
}

// Deserialize decodes a value written by Serialize.
func (c *Codecs) Deserialize(ctx context.Context, data []byte) (interface{}, error) {
	return c.deserialize(ctx, data, false)
}

// DeserializeMemoized decodes a value written by SerializeMemoized.
func (c *Codecs) DeserializeMemoized(ctx context.Context, data []byte) (interface{}, error) {
	return c.deserialize(ctx, data, true)
}

func (c *Codecs) serialize(ctx context.Context, value interface{}, memoize bool) ([]byte, error) {
	buf := &bytes.Buffer{}
	if _, err := c.SerializeTo(ctx, value, buf, memoize); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codecs) deserialize(ctx context.Context, data []byte, memoize bool) (interface{}, error) {
	buf := bytes.NewBuffer(data)
	value, _, err := c.DeserializeFrom(ctx, buf, c.format, memoize)
	if err != nil {
		return nil, err
	}
	if buf.Len() != 0 {
		return nil, errors.Wrapf(ErrTrailingData, "%d bytes", buf.Len())
	}
	return value, nil
}

// SerializeTo writes value to w with the codecs' format.
func (c *Codecs) SerializeTo(ctx context.Context, value interface{}, w io.Writer, memoize bool) (binary.Stats, error) {
	ctx = log.Enter(ctx, "Serialize")
	s := binary.NewSerializationContext(c.registry, c.dependencies)
	if memoize {
		var err error
		if s, err = s.NewMemoizingContext(); err != nil {
			return binary.Stats{}, err
		}
	}
	err := fault.Capture(func() error { return s.Serialize(value, c.format.Writer(w)) })
	if err != nil {
		return s.Stats(), errors.WithMessagef(err, "Serializing %T", value)
	}
	log.D(ctx, "%T with %v: %v", value, c.format, s.Stats())
	return s.Stats(), nil
}

// DeserializeFrom reads one value from r with the given format.
func (c *Codecs) DeserializeFrom(ctx context.Context, r io.Reader, format Format, memoize bool) (interface{}, binary.Stats, error) {
	ctx = log.Enter(ctx, "Deserialize")
	d := binary.NewDeserializationContext(c.registry, c.dependencies)
	if memoize {
		var err error
		if d, err = d.NewMemoizingContext(); err != nil {
			return nil, binary.Stats{}, err
		}
	}
	var value interface{}
	err := fault.Capture(func() error {
		var err error
		value, err = d.Deserialize(format.Reader(r))
		return err
	})
	if err != nil {
		return nil, d.Stats(), errors.WithMessage(err, "Deserializing")
	}
	log.D(ctx, "%T with %v: %v", value, format, d.Stats())
	return value, d.Stats(), nil
}
