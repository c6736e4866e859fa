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

package codecs

import (
	"reflect"
	"sort"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary"
	"github.com/pkg/errors"
)

type sliceCodec struct{}

// MaxSliceLength is the largest element count Slice will decode. The backing
// array is allocated in full before any element is read.
const MaxSliceLength = 1 << 20

// Slice returns the codec for []interface{}. Slices are memoized before their
// elements, so a slice may contain itself.
func Slice() binary.Codec { return sliceCodec{} }

func (sliceCodec) Type() reflect.Type        { return reflect.TypeOf([]interface{}{}) }
func (sliceCodec) Strategy() binary.Strategy { return binary.MemoizeBefore }

func (sliceCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	list := value.([]interface{})
	w.Uint32(uint32(len(list)))
	for i, item := range list {
		if err := ctx.Serialize(item, w); err != nil {
			return errors.WithMessagef(err, "Element %d", i)
		}
	}
	return nil
}

func (sliceCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	count := r.Count()
	if err := r.Error(); err != nil {
		return nil, err
	}
	if count > MaxSliceLength {
		return nil, errors.Errorf("Slice length %d exceeds the limit of %d", count, MaxSliceLength)
	}
	list := make([]interface{}, count)
	if err := ctx.RegisterInitialValue(list); err != nil {
		return nil, err
	}
	for i := range list {
		item, err := ctx.Deserialize(r)
		if err != nil {
			return nil, errors.WithMessagef(err, "Element %d", i)
		}
		list[i] = item
	}
	return list, nil
}

type mapCodec struct{}

const mapSizeHint = 64

// Map returns the codec for map[string]interface{}. Entries are written in
// key order so equal maps always encode to the same bytes.
func Map() binary.Codec { return mapCodec{} }

func (mapCodec) Type() reflect.Type        { return reflect.TypeOf(map[string]interface{}{}) }
func (mapCodec) Strategy() binary.Strategy { return binary.MemoizeBefore }

func (mapCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	m := value.(map[string]interface{})
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w.Uint32(uint32(len(keys)))
	for _, k := range keys {
		w.String(k)
		if err := ctx.Serialize(m[k], w); err != nil {
			return errors.WithMessagef(err, "Key %q", k)
		}
	}
	return nil
}

func (mapCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	count := r.Count()
	if err := r.Error(); err != nil {
		return nil, err
	}
	// The count is untrusted until the entries arrive.
	m := make(map[string]interface{}, min(count, mapSizeHint))
	if err := ctx.RegisterInitialValue(m); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		k := r.String()
		if err := r.Error(); err != nil {
			return nil, err
		}
		v, err := ctx.Deserialize(r)
		if err != nil {
			return nil, errors.WithMessagef(err, "Key %q", k)
		}
		m[k] = v
	}
	return m, nil
}
