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

package codecs_test

import (
	"bytes"
	"fmt"
	"reflect"
	"runtime"
	"testing"

	"github.com/google/graphcodec/core/assert"
	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/codecs"
	"github.com/google/graphcodec/framework/binary/test"
	"github.com/google/graphcodec/framework/binary/vle"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type point struct {
	X, Y int
}

type pair struct {
	A, B string
}

// pairCodec writes a pair through a temporary slice, and collects garbage
// after each one so the next temporary is likely to reuse its memory.
type pairCodec struct{}

func (pairCodec) Type() reflect.Type        { return reflect.TypeOf(&pair{}) }
func (pairCodec) Strategy() binary.Strategy { return binary.DoNotMemoize }

func (pairCodec) Encode(ctx *binary.SerializationContext, value interface{}, w pod.Writer) error {
	p := value.(*pair)
	if err := ctx.Serialize([]interface{}{p.A, p.B}, w); err != nil {
		return err
	}
	runtime.GC()
	return nil
}

func (pairCodec) Decode(ctx *binary.DeserializationContext, r pod.Reader) (interface{}, error) {
	v, err := ctx.Deserialize(r)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]interface{})
	if !ok || len(list) != 2 {
		return nil, errors.Errorf("Pair decoded as %T", v)
	}
	a, _ := list[0].(string)
	b, _ := list[1].(string)
	return &pair{a, b}, nil
}

func TestBuiltins(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	for _, value := range []interface{}{
		"hello",
		"",
		true,
		42,
		int64(-7),
		uint64(1 << 63),
		3.25,
		[]byte{1, 2, 3},
		[]interface{}{"a", 1, nil},
		[]interface{}{},
		map[string]interface{}{"b": 1, "a": []interface{}{true}, "c": map[string]interface{}{}},
	} {
		ctx := log.V{"value": value}.Bind(ctx)
		got, _, err := test.RoundTrip(r, value)
		assert.For(ctx, "err").ThatError(err).Succeeded()
		assert.For(ctx, "plain").That(got).DeepEquals(value)
		got, _, err = test.RoundTripMemoized(r, value)
		assert.For(ctx, "err").ThatError(err).Succeeded()
		assert.For(ctx, "memoized").That(got).DeepEquals(value)
	}
}

func TestMapIsDeterministic(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	a := map[string]interface{}{}
	b := map[string]interface{}{}
	keys := []string{"delta", "alpha", "echo", "charlie", "bravo", "foxtrot"}
	for i, k := range keys {
		a[k] = i
		b[keys[len(keys)-1-i]] = len(keys) - 1 - i
	}
	expect, err := test.Encode(r, a, false)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	for i := 0; i < 8; i++ {
		got, err := test.Encode(r, b, false)
		assert.For(ctx, "err").ThatError(err).Succeeded()
		assert.For(ctx, "encoding %d", i).ThatBytes(got).Equals(expect)
	}
}

func TestSharingAndCycles(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	shared := []interface{}{"x"}
	data := []byte("payload")
	m := map[string]interface{}{"a": shared, "b": shared, "c": data, "d": data}
	m["self"] = m
	loop := make([]interface{}, 1)
	loop[0] = loop
	m["loop"] = loop

	got, stream, err := test.RoundTripMemoized(r, m)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	out := got.(map[string]interface{})
	assert.For(ctx, "self").That(out["self"]).IsSameAs(out)
	assert.For(ctx, "shared").That(out["a"]).IsSameAs(out["b"])
	assert.For(ctx, "bytes").That(out["c"]).IsSameAs(out["d"])
	assert.For(ctx, "not the input").That(out["a"]).IsNotSameAs(shared)
	l := out["loop"].([]interface{})
	assert.For(ctx, "loop").That(l[0]).IsSameAs(l)

	again, err := test.Encode(r, out, true)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "re-encoded").ThatBytes(again).Equals(stream)
}

func TestTemporariesAreNotShared(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().Add(pairCodec{}).MustBuild()
	pairs := make([]interface{}, 200)
	for i := range pairs {
		pairs[i] = &pair{fmt.Sprint("a", i), fmt.Sprint("b", i)}
	}
	got, _, err := test.RoundTripMemoized(r, pairs)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "pairs").That(got).DeepEquals(pairs)
}

func TestUnregisteredElement(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	_, err := test.Encode(r, []interface{}{"ok", float32(1)}, false)
	assert.For(ctx, "err").ThatError(err).HasCause(binary.ErrUnregisteredType)
	assert.For(ctx, "err").ThatString(err).Contains("Element 1")
}

func TestProto(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().
		Add(codecs.Proto(&wrapperspb.StringValue{}), codecs.Proto(&structpb.Struct{})).
		MustBuild()
	name := wrapperspb.String("graph")
	st, err := structpb.NewStruct(map[string]interface{}{"z": 1.5, "a": "b", "list": []interface{}{true}})
	assert.For(ctx, "err").ThatError(err).Succeeded()

	got, stream, err := test.RoundTripMemoized(r, []interface{}{name, st, name})
	assert.For(ctx, "err").ThatError(err).Succeeded()
	list := got.([]interface{})
	assert.For(ctx, "string value").ThatBoolean(proto.Equal(list[0].(proto.Message), name)).IsTrue()
	assert.For(ctx, "struct").ThatBoolean(proto.Equal(list[1].(proto.Message), st)).IsTrue()
	assert.For(ctx, "shared").That(list[2]).IsSameAs(list[0])

	again, err := test.Encode(r, got, true)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "deterministic").ThatBytes(again).Equals(stream)
}

func TestCBOR(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().
		Add(codecs.CBOR(point{}), codecs.CBOR(&point{})).
		MustBuild()

	got, _, err := test.RoundTrip(r, point{3, -4})
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "value").That(got).Equals(point{3, -4})

	p := &point{1, 2}
	got, _, err = test.RoundTripMemoized(r, []interface{}{p, p})
	assert.For(ctx, "err").ThatError(err).Succeeded()
	list := got.([]interface{})
	assert.For(ctx, "pointer").That(list[0]).DeepEquals(p)
	assert.For(ctx, "shared").That(list[1]).IsSameAs(list[0])

	assert.For(ctx, "value strategy").That(codecs.CBOR(point{}).Strategy()).Equals(binary.DoNotMemoize)
	assert.For(ctx, "pointer strategy").That(codecs.CBOR(&point{}).Strategy()).Equals(binary.MemoizeAfter)
}

func TestCorruptPayload(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().Add(codecs.CBOR(point{})).MustBuild()
	d, err := r.CodecFor(codecs.CBOR(point{}).Type())
	assert.For(ctx, "err").ThatError(err).Succeeded()
	stream := []byte{byte(d.Tag) << 1, 0x01, 0xff}
	_, err = test.Decode(r, stream, false)
	assert.For(ctx, "err").ThatError(err).Failed()
}

func TestTruncatedSliceNamesCodec(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	stream, err := test.Encode(r, []interface{}{"a", "bc"}, false)
	assert.For(ctx, "err").ThatError(err).Succeeded()
	_, err = test.Decode(r, stream[:len(stream)-1], false)
	assert.For(ctx, "err").ThatError(err).Failed()
	assert.For(ctx, "codec").ThatString(err).Contains("Decoding []interface {} (tag")
	assert.For(ctx, "element").ThatString(err).Contains("Element 1")
}

func TestCorruptCount(t *testing.T) {
	ctx := log.Testing(t)
	r := codecs.Standard().MustBuild()
	for _, c := range []struct {
		typ   reflect.Type
		count uint32
	}{
		{reflect.TypeOf([]interface{}{}), codecs.MaxSliceLength + 1},
		{reflect.TypeOf([]interface{}{}), pod.MaxCount + 1},
		{reflect.TypeOf(map[string]interface{}{}), pod.MaxCount + 1},
		{reflect.TypeOf([]byte{}), pod.MaxCount + 1},
	} {
		ctx := log.V{"type": c.typ, "count": c.count}.Bind(ctx)
		d, err := r.CodecFor(c.typ)
		assert.For(ctx, "err").ThatError(err).Succeeded()
		buf := &bytes.Buffer{}
		w := vle.Writer(buf)
		w.Int32(int32(d.Tag.Memoized()))
		if d.Codec.Strategy() == binary.MemoizeBefore {
			w.Uint32(0)
		}
		w.Uint32(c.count)
		_, err = test.Decode(r, buf.Bytes(), true)
		assert.For(ctx, "err").ThatError(err).Failed()
		assert.For(ctx, "message").ThatString(err).Contains("exceeds the limit")
	}
}
