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

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

type protoCodec struct {
	t   reflect.Type
	new func() proto.Message
}

// Proto returns a codec for the concrete message type of msg. Messages are
// written as length prefixed deterministic protobuf encodings, and are
// memoized since they are always pointers.
func Proto(msg proto.Message) binary.Codec {
	m := msg.ProtoReflect()
	return &protoCodec{
		t:   reflect.TypeOf(msg),
		new: func() proto.Message { return m.New().Interface() },
	}
}

var marshal = proto.MarshalOptions{Deterministic: true}

func (c *protoCodec) Type() reflect.Type        { return c.t }
func (c *protoCodec) Strategy() binary.Strategy { return binary.MemoizeAfter }

func (c *protoCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	data, err := marshal.Marshal(value.(proto.Message))
	if err != nil {
		return errors.Wrapf(err, "Marshaling %v", c.t)
	}
	w.Uint32(uint32(len(data)))
	w.Data(data)
	return nil
}

func (c *protoCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	data := make([]byte, r.Count())
	r.Data(data)
	if err := r.Error(); err != nil {
		return nil, err
	}
	msg := c.new()
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, errors.Wrapf(err, "Unmarshaling %v", c.t)
	}
	return msg, nil
}
