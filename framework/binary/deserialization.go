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

package binary

import (
	"reflect"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary/ident"
	"github.com/pkg/errors"
)

// DeserializationContext reads values written by a SerializationContext over
// the same registry. Like its counterpart it belongs to one top level call.
type DeserializationContext struct {
	registry     Registry
	dependencies map[reflect.Type]interface{}
	memo         *memoTable
	stats        Stats
}

// NewDeserializationContext returns a context that is not memoizing.
func NewDeserializationContext(registry Registry, dependencies map[reflect.Type]interface{}) *DeserializationContext {
	return &DeserializationContext{registry: registry, dependencies: dependencies}
}

// NewMemoizingContext returns a new context with an empty memoization table.
// Starting a table from a context that already has one is an
// ErrMemoizationMismatch, as the writer can never have done the same.
func (c *DeserializationContext) NewMemoizingContext() (*DeserializationContext, error) {
	if c.memo != nil {
		return nil, errors.Wrap(ErrMemoizationMismatch, "Deserialization context is already memoizing")
	}
	return &DeserializationContext{
		registry:     c.registry,
		dependencies: c.dependencies,
		memo:         &memoTable{},
	}, nil
}

// Memoizing returns true if the context has a memoization table.
func (c *DeserializationContext) Memoizing() bool { return c.memo != nil }

// Dependency returns the dependency registered for t, or nil.
func (c *DeserializationContext) Dependency(t reflect.Type) interface{} {
	return c.dependencies[t]
}

// Stats returns the counts of records read through the context.
func (c *DeserializationContext) Stats() Stats { return c.stats }

// Deserialize reads the next value from r.
// Errors in a record's tag or backreference report the stream offset of the
// record.
func (c *DeserializationContext) Deserialize(r pod.Reader) (interface{}, error) {
	offset := r.Offset()
	tag := Tag(r.Int32())
	if err := r.Error(); err != nil {
		return nil, errors.Wrap(err, "Reading tag")
	}
	switch {
	case tag == NullTag:
		c.stats.Nulls++
		return nil, nil
	case tag == BackreferenceTag:
		ordinal := r.Uint32()
		if err := r.Error(); err != nil {
			return nil, errors.Wrap(err, "Reading backreference")
		}
		if c.memo == nil {
			return nil, at(offset, errors.Wrapf(ErrMemoizationMismatch,
				"Backreference to ordinal %d in a context that is not memoizing", ordinal))
		}
		c.stats.Backreferences++
		value, err := c.memo.lookup(ordinal)
		if err != nil {
			return nil, at(offset, err)
		}
		return value, nil
	case tag.IsMemoized():
		return c.deserializeMemoized(tag.Memoized(), r, offset)
	}
	if value, ok := c.registry.ConstantFor(tag); ok {
		c.stats.Constants++
		return value, nil
	}
	d, err := c.registry.DescriptorFor(tag)
	if err != nil {
		return nil, at(offset, err)
	}
	if c.memo != nil && d.Codec.Strategy() != DoNotMemoize {
		return nil, at(offset, errors.Wrapf(ErrMemoizationMismatch, "%v was not memoized by the writer", d))
	}
	c.stats.Values++
	return c.decode(d, r, -1)
}

func (c *DeserializationContext) deserializeMemoized(tag Tag, r pod.Reader, offset int64) (interface{}, error) {
	d, err := c.registry.DescriptorFor(tag)
	if err != nil {
		return nil, at(offset, err)
	}
	if c.memo == nil {
		return nil, at(offset, errors.Wrapf(ErrMemoizationMismatch,
			"%v was memoized by the writer, but the context is not memoizing", d))
	}
	c.stats.Memoized++
	switch d.Codec.Strategy() {
	case MemoizeBefore:
		ordinal := r.Uint32()
		if err := r.Error(); err != nil {
			return nil, errors.Wrapf(err, "Reading ordinal of %v", d)
		}
		slot, err := c.memo.claim(ordinal)
		if err != nil {
			return nil, errors.WithMessagef(err, "Decoding %v", d)
		}
		value, err := c.decode(d, r, slot)
		if err != nil {
			return nil, err
		}
		s := &c.memo.slots[slot]
		if s.state == slotInitial && !ident.IsNil(value) {
			if _, keyed := ident.Of(s.value); keyed && !ident.Same(s.value, value) {
				return nil, errors.Wrapf(ErrMemoizationMismatch,
					"%v decoded a different value from the one it registered", d)
			}
		}
		s.value, s.state = value, slotComplete
		return value, nil
	case MemoizeAfter:
		value, err := c.decode(d, r, -1)
		if err != nil {
			return nil, err
		}
		ordinal := r.Uint32()
		if err := r.Error(); err != nil {
			return nil, errors.Wrapf(err, "Reading ordinal of %v", d)
		}
		slot, err := c.memo.claim(ordinal)
		if err != nil {
			return nil, errors.WithMessagef(err, "Decoding %v", d)
		}
		c.memo.slots[slot] = memoSlot{value: value, state: slotComplete}
		return value, nil
	default:
		return nil, at(offset, errors.Wrapf(ErrMemoizationMismatch, "%v was memoized by the writer", d))
	}
}

func at(offset int64, err error) error {
	return errors.WithMessagef(err, "At offset %d", offset)
}

// RegisterInitialValue publishes the value a MemoizeBefore codec is decoding
// before its payload is complete, so that children can refer back to it.
// It does nothing in a context that is not memoizing.
func (c *DeserializationContext) RegisterInitialValue(value interface{}) error {
	if c.memo == nil {
		return nil
	}
	if len(c.memo.frames) == 0 {
		return errors.Wrap(ErrMemoizationMismatch, "RegisterInitialValue called outside of a codec")
	}
	slot := c.memo.frames[len(c.memo.frames)-1]
	if slot < 0 {
		return errors.Wrap(ErrMemoizationMismatch, "RegisterInitialValue called by a codec that is not MemoizeBefore")
	}
	s := &c.memo.slots[slot]
	if s.state != slotReserved {
		return errors.Wrapf(ErrMemoizationMismatch, "Initial value for ordinal %d registered twice", slot)
	}
	s.value, s.state = value, slotInitial
	return nil
}

func (c *DeserializationContext) decode(d *Descriptor, r pod.Reader, slot int) (interface{}, error) {
	if c.memo != nil {
		c.memo.frames = append(c.memo.frames, slot)
		defer func() { c.memo.frames = c.memo.frames[:len(c.memo.frames)-1] }()
	}
	value, err := d.Codec.Decode(c, r)
	if err != nil {
		return nil, errors.WithMessagef(err, "Decoding %v", d)
	}
	if err := r.Error(); err != nil {
		return nil, errors.Wrapf(err, "Decoding %v", d)
	}
	return value, nil
}
