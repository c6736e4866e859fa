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
	"fmt"
	"reflect"

	"github.com/google/graphcodec/core/data/pod"
)

// Tag selects how the bytes that follow it in a stream are interpreted.
type Tag int32

const (
	// NullTag is written for nil values.
	NullTag Tag = 0
	// BackreferenceTag precedes the ordinal of a previously memoized value.
	BackreferenceTag Tag = -1
)

// Memoized converts between a codec tag and the wire tag of a memoized value
// of that codec. The mapping is its own inverse.
func (t Tag) Memoized() Tag { return -t - 1 }

// IsMemoized returns true if t is the wire tag of a memoized codec value.
func (t Tag) IsMemoized() bool { return t < BackreferenceTag }

// Codec encodes and decodes values of a single dynamic type.
type Codec interface {
	// Type returns the exact dynamic type of the values the codec handles.
	Type() reflect.Type

	// Strategy returns how values produced by the codec are memoized.
	Strategy() Strategy

	// Encode writes value to w. The value is always of the codec's Type.
	// Child values are written with ctx.Serialize.
	Encode(ctx *SerializationContext, value interface{}, w pod.Writer) error

	// Decode reads a value written by Encode from r. Child values are read
	// with ctx.Deserialize, in the order Encode wrote them.
	Decode(ctx *DeserializationContext, r pod.Reader) (interface{}, error)
}

// Descriptor binds a codec to the tag a registry assigned it.
type Descriptor struct {
	Tag   Tag
	Codec Codec
	Type  reflect.Type
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%v (tag %d, %v)", d.Type, d.Tag, d.Codec.Strategy())
}

// Registry resolves the codecs and constants of a stream.
// Implementations must be safe for concurrent readers.
type Registry interface {
	// CodecFor returns the descriptor for the exact type t, or an
	// ErrUnregisteredType error.
	CodecFor(t reflect.Type) (*Descriptor, error)
	// DescriptorFor returns the descriptor for a codec tag, or an
	// ErrUnknownTag error.
	DescriptorFor(tag Tag) (*Descriptor, error)
	// ConstantTagFor returns the tag of the constant with the same identity as
	// value. The second result is false if value is not a constant.
	ConstantTagFor(value interface{}) (Tag, bool)
	// ConstantFor returns the constant for tag.
	ConstantFor(tag Tag) (interface{}, bool)
}
