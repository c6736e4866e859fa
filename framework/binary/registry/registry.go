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

// Package registry builds the immutable tables that map Go types to codecs
// and tags to constants.
package registry

import (
	"fmt"
	"reflect"

	"github.com/google/graphcodec/core/fault"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/ident"
	"github.com/pkg/errors"
)

// ErrInvalidRegistration is returned by Build for codecs and constants that
// cannot be registered.
const ErrInvalidRegistration = fault.Const("Invalid registration")

// Registry is an immutable binary.Registry. Constants take the tags 1 to C
// and codecs the tags C+1 to C+N, both in the order they were added.
// A Registry is safe for concurrent use.
type Registry struct {
	constants    []interface{}
	constantTags map[ident.Key]binary.Tag
	codecs       []*binary.Descriptor
	byType       map[reflect.Type]*binary.Descriptor
	fingerprint  Fingerprint
}

var _ binary.Registry = &Registry{}

// Builder collects codecs and constants for a Registry.
type Builder struct {
	codecs    []binary.Codec
	constants []interface{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends codecs to the builder.
func (b *Builder) Add(codecs ...binary.Codec) *Builder {
	b.codecs = append(b.codecs, codecs...)
	return b
}

// AddConstant appends singleton values to the builder. Constants are matched
// by identity, so each must be a pointer, map, non-empty slice or non-empty
// string.
func (b *Builder) AddConstant(values ...interface{}) *Builder {
	b.constants = append(b.constants, values...)
	return b
}

// Build validates the collected entries and returns the Registry.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		constants:    append([]interface{}{}, b.constants...),
		constantTags: map[ident.Key]binary.Tag{},
		byType:       map[reflect.Type]*binary.Descriptor{},
	}
	for i, c := range r.constants {
		key, ok := ident.Of(c)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidRegistration, "Constant %d (%T) has no identity", i, c)
		}
		if tag, found := r.constantTags[key]; found {
			return nil, errors.Wrapf(ErrInvalidRegistration, "Constant %v already present as tag %d", key, tag)
		}
		r.constantTags[key] = binary.Tag(i + 1)
	}
	for i, c := range b.codecs {
		if c == nil {
			return nil, errors.Wrapf(ErrInvalidRegistration, "Attempt to add nil codec at index %d", i)
		}
		t := c.Type()
		if t == nil {
			return nil, errors.Wrapf(ErrInvalidRegistration, "Codec %T has no type", c)
		}
		if d, found := r.byType[t]; found {
			return nil, errors.Wrapf(ErrInvalidRegistration, "Codec for %v already present as %v", t, d)
		}
		d := &binary.Descriptor{
			Tag:   binary.Tag(len(r.constants) + i + 1),
			Codec: c,
			Type:  t,
		}
		r.codecs = append(r.codecs, d)
		r.byType[t] = d
	}
	r.fingerprint = fingerprint(r)
	return r, nil
}

// MustBuild is Build for registries assembled at init time, it panics on
// error.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}

// CodecFor returns the descriptor for the exact type t.
func (r *Registry) CodecFor(t reflect.Type) (*binary.Descriptor, error) {
	if d, found := r.byType[t]; found {
		return d, nil
	}
	return nil, errors.Wrapf(binary.ErrUnregisteredType, "%v", t)
}

// DescriptorFor returns the descriptor of the codec assigned tag.
func (r *Registry) DescriptorFor(tag binary.Tag) (*binary.Descriptor, error) {
	i := int(tag) - len(r.constants) - 1
	if i < 0 || i >= len(r.codecs) {
		return nil, errors.Wrapf(binary.ErrUnknownTag, "%d (registry has %d constants and %d codecs)",
			tag, len(r.constants), len(r.codecs))
	}
	return r.codecs[i], nil
}

// ConstantTagFor returns the tag of the constant that is the same instance
// as value.
func (r *Registry) ConstantTagFor(value interface{}) (binary.Tag, bool) {
	if len(r.constantTags) == 0 {
		return 0, false
	}
	key, ok := ident.Of(value)
	if !ok {
		return 0, false
	}
	tag, found := r.constantTags[key]
	return tag, found
}

// ConstantFor returns the constant assigned tag.
func (r *Registry) ConstantFor(tag binary.Tag) (interface{}, bool) {
	if tag < 1 || int(tag) > len(r.constants) {
		return nil, false
	}
	return r.constants[tag-1], true
}

// Count returns the number of codecs in the registry.
func (r *Registry) Count() int { return len(r.codecs) }

// ConstantCount returns the number of constants in the registry.
func (r *Registry) ConstantCount() int { return len(r.constants) }

// Visit invokes the visitor for every codec in tag order.
func (r *Registry) Visit(visitor func(*binary.Descriptor)) {
	for _, d := range r.codecs {
		visitor(d)
	}
}

// VisitConstants invokes the visitor for every constant in tag order.
func (r *Registry) VisitConstants(visitor func(binary.Tag, interface{})) {
	for i, c := range r.constants {
		visitor(binary.Tag(i+1), c)
	}
}

// Fingerprint identifies the tag assignment of the registry.
func (r *Registry) Fingerprint() Fingerprint { return r.fingerprint }

func (r *Registry) String() string {
	return fmt.Sprintf("registry %v (%d constants, %d codecs)", r.fingerprint, len(r.constants), len(r.codecs))
}
