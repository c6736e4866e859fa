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

package binary_test

import (
	"reflect"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/ident"
	"github.com/pkg/errors"
)

// registry is a Registry over explicit tables that counts how often it is
// consulted.
type registry struct {
	constants []interface{}
	codecs    []*binary.Descriptor
	calls     int
}

func newRegistry(constants []interface{}, codecs ...binary.Codec) *registry {
	r := &registry{constants: constants}
	for i, c := range codecs {
		r.codecs = append(r.codecs, &binary.Descriptor{
			Tag:   binary.Tag(len(constants) + i + 1),
			Codec: c,
			Type:  c.Type(),
		})
	}
	return r
}

func (r *registry) CodecFor(t reflect.Type) (*binary.Descriptor, error) {
	r.calls++
	for _, d := range r.codecs {
		if d.Type == t {
			return d, nil
		}
	}
	return nil, errors.Wrapf(binary.ErrUnregisteredType, "%v", t)
}

func (r *registry) DescriptorFor(tag binary.Tag) (*binary.Descriptor, error) {
	r.calls++
	i := int(tag) - len(r.constants) - 1
	if i < 0 || i >= len(r.codecs) {
		return nil, errors.Wrapf(binary.ErrUnknownTag, "%d", tag)
	}
	return r.codecs[i], nil
}

func (r *registry) ConstantTagFor(value interface{}) (binary.Tag, bool) {
	r.calls++
	for i, c := range r.constants {
		if ident.Same(c, value) {
			return binary.Tag(i + 1), true
		}
	}
	return 0, false
}

func (r *registry) ConstantFor(tag binary.Tag) (interface{}, bool) {
	r.calls++
	if tag < 1 || int(tag) > len(r.constants) {
		return nil, false
	}
	return r.constants[tag-1], true
}

type stringCodec struct{ strategy binary.Strategy }

func (stringCodec) Type() reflect.Type          { return reflect.TypeOf("") }
func (c stringCodec) Strategy() binary.Strategy { return c.strategy }

func (stringCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	w.String(value.(string))
	return nil
}

func (stringCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	return r.String(), nil
}

// listCodec encodes []interface{} as a count followed by the elements.
type listCodec struct{ strategy binary.Strategy }

func (listCodec) Type() reflect.Type          { return reflect.TypeOf([]interface{}{}) }
func (c listCodec) Strategy() binary.Strategy { return c.strategy }

func (listCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	list := value.([]interface{})
	w.Uint32(uint32(len(list)))
	for _, item := range list {
		if err := ctx.Serialize(item, w); err != nil {
			return err
		}
	}
	return nil
}

func (listCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	list := make([]interface{}, r.Count())
	for i := range list {
		item, err := ctx.Deserialize(r)
		if err != nil {
			return nil, err
		}
		list[i] = item
	}
	return list, nil
}

// onlyMemoizesWhenDecoding writes lists like listCodec, but starts a new
// memoization table when it reads them back.
type onlyMemoizesWhenDecoding struct{ listCodec }

func (c onlyMemoizesWhenDecoding) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	ctx, err := ctx.NewMemoizingContext()
	if err != nil {
		return nil, err
	}
	return c.listCodec.Decode(ctx, r)
}

type node struct {
	Name string
	Next *node
}

// nodeCodec supports cycles by publishing each node before its successor is
// decoded.
type nodeCodec struct{}

func (nodeCodec) Type() reflect.Type        { return reflect.TypeOf(&node{}) }
func (nodeCodec) Strategy() binary.Strategy { return binary.MemoizeBefore }

func (nodeCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	n := value.(*node)
	w.String(n.Name)
	return ctx.Serialize(n.Next, w)
}

func (nodeCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	n := &node{}
	if err := ctx.RegisterInitialValue(n); err != nil {
		return nil, err
	}
	n.Name = r.String()
	next, err := ctx.Deserialize(r)
	if err != nil {
		return nil, err
	}
	if next != nil {
		n.Next = next.(*node)
	}
	return n, nil
}

// lateNodeCodec never registers an initial value.
type lateNodeCodec struct{ nodeCodec }

func (lateNodeCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	n := &node{Name: r.String()}
	next, err := ctx.Deserialize(r)
	if err != nil {
		return nil, err
	}
	if next != nil {
		n.Next = next.(*node)
	}
	return n, nil
}

type dependency struct{ prefix string }

// prefixCodec uses a dependency supplied to the contexts.
type prefixCodec struct{ stringCodec }

func (prefixCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	d := ctx.Dependency(reflect.TypeOf(dependency{})).(dependency)
	return d.prefix + r.String(), nil
}
