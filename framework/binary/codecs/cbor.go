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

	"github.com/fxamacker/cbor/v2"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary"
	"github.com/pkg/errors"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

type cborCodec struct {
	t        reflect.Type
	strategy binary.Strategy
}

// CBOR returns a codec that writes values of the type of prototype as
// length prefixed core deterministic CBOR. The value is opaque to the
// context: nothing inside it is memoized. Values of pointer, map and slice
// types are memoized as a whole.
func CBOR(prototype interface{}) binary.Codec {
	t := reflect.TypeOf(prototype)
	c := &cborCodec{t: t}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		c.strategy = binary.MemoizeAfter
	}
	return c
}

func (c *cborCodec) Type() reflect.Type        { return c.t }
func (c *cborCodec) Strategy() binary.Strategy { return c.strategy }

func (c *cborCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	data, err := encMode.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "Marshaling %v", c.t)
	}
	w.Uint32(uint32(len(data)))
	w.Data(data)
	return nil
}

func (c *cborCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	data := make([]byte, r.Count())
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, err
	}
	v := reflect.New(c.t)
	if err := decMode.Unmarshal(data, v.Interface()); err != nil {
		return nil, errors.Wrapf(err, "Unmarshaling %v", c.t)
	}
	return v.Elem().Interface(), nil
}
