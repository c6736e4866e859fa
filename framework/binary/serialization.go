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

// SerializationContext writes values to a stream using the codecs of a
// Registry. A context belongs to a single top level Serialize call and the
// codec calls nested in it; it must not be used concurrently.
type SerializationContext struct {
	registry     Registry
	dependencies map[reflect.Type]interface{}
	memo         *memoizer
	stats        Stats
}

// NewSerializationContext returns a context that is not memoizing.
// dependencies are made available to codecs through Dependency.
func NewSerializationContext(registry Registry, dependencies map[reflect.Type]interface{}) *SerializationContext {
	return &SerializationContext{registry: registry, dependencies: dependencies}
}

// NewMemoizingContext returns a new context with an empty memoization table.
// Contexts never share tables, and a context that is already memoizing cannot
// start a second table.
func (c *SerializationContext) NewMemoizingContext() (*SerializationContext, error) {
	if c.memo != nil {
		return nil, errors.Wrap(ErrMemoizationMismatch, "Serialization context is already memoizing")
	}
	return &SerializationContext{
		registry:     c.registry,
		dependencies: c.dependencies,
		memo:         newMemoizer(),
	}, nil
}

// Memoizing returns true if the context has a memoization table.
func (c *SerializationContext) Memoizing() bool { return c.memo != nil }

// Dependency returns the dependency registered for t, or nil.
func (c *SerializationContext) Dependency(t reflect.Type) interface{} {
	return c.dependencies[t]
}

// Stats returns the counts of records written through the context.
func (c *SerializationContext) Stats() Stats { return c.stats }

// Serialize writes value to w.
func (c *SerializationContext) Serialize(value interface{}, w pod.Writer) error {
	if ident.IsNil(value) {
		c.stats.Nulls++
		w.Int32(int32(NullTag))
		return written(w, "Writing null")
	}
	key, keyed := ident.Of(value)
	if c.memo != nil && keyed {
		if ordinal, found := c.memo.lookup(key); found {
			c.stats.Backreferences++
			w.Int32(int32(BackreferenceTag))
			w.Uint32(ordinal)
			return written(w, "Writing backreference %d", ordinal)
		}
	}
	if tag, ok := c.registry.ConstantTagFor(value); ok {
		c.stats.Constants++
		w.Int32(int32(tag))
		return written(w, "Writing constant %d", tag)
	}
	d, err := c.registry.CodecFor(reflect.TypeOf(value))
	if err != nil {
		return err
	}
	strategy := d.Codec.Strategy()
	if c.memo == nil || strategy == DoNotMemoize {
		c.stats.Values++
		w.Int32(int32(d.Tag))
		if err := written(w, "Writing tag of %v", d); err != nil {
			return err
		}
		return c.encode(d, value, w)
	}

	c.stats.Memoized++
	w.Int32(int32(d.Tag.Memoized()))
	if err := written(w, "Writing tag of %v", d); err != nil {
		return err
	}
	switch strategy {
	case MemoizeBefore:
		ordinal := c.memo.assign(key, keyed, value)
		w.Uint32(ordinal)
		if err := written(w, "Writing ordinal of %v", d); err != nil {
			return err
		}
		return c.encode(d, value, w)
	case MemoizeAfter:
		if keyed {
			if err := c.memo.begin(key, value); err != nil {
				return err
			}
			defer c.memo.end(key)
		}
		if err := c.encode(d, value, w); err != nil {
			return err
		}
		w.Uint32(c.memo.assign(key, keyed, value))
		return written(w, "Writing ordinal of %v", d)
	default:
		return errors.Errorf("%v has unknown memoization strategy", d)
	}
}

func (c *SerializationContext) encode(d *Descriptor, value interface{}, w pod.Writer) error {
	if err := d.Codec.Encode(c, value, w); err != nil {
		return errors.WithMessagef(err, "Encoding %v", d)
	}
	return written(w, "Encoding %v", d)
}

func written(w pod.Writer, msg string, args ...interface{}) error {
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, msg, args...)
	}
	return nil
}
