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

// Package binary implements memoizing serialization of object graphs.
//
// A SerializationContext converts a value into a stream of tagged records by
// dispatching on the value's dynamic type to a Codec found in a Registry. A
// DeserializationContext reads the stream back, dispatching on the tags.
// Codecs encode composite values by calling back into the same context for
// each child value.
//
// # Memoization
//
// A context made with NewMemoizingContext keeps a memoization table. Each
// value encoded by a codec whose Strategy is not DoNotMemoize is given the
// next ordinal of the table, starting at 0. When the same instance is met
// again only a backreference to its ordinal is written, and the decoder
// resolves the backreference to the instance it already built, so aliasing
// survives the round trip. Identity is storage identity (see package ident),
// never structural equality.
//
// MemoizeAfter codecs record the value once it has been fully encoded or
// decoded. MemoizeBefore codecs record it before the payload, which lets
// cyclic graphs round trip: the decoding codec publishes its partially
// built value with RegisterInitialValue before it decodes its children.
//
// # Wire format
//
// Every value starts with a signed tag, written with pod.Writer.Int32.
// A Registry holding C constants and N codecs partitions the tags as:
//
//	0            null, no payload
//	1 .. C       constant, no payload
//	C+1 .. C+N   codec, followed by the codec's payload
//	-1           backreference, followed by a Uint32 ordinal
//	<= -2        memoized codec value for codec tag -tag-1
//
// A memoized codec value carries its ordinal as a Uint32, written before the
// payload for MemoizeBefore codecs and after it for MemoizeAfter codecs. The
// decoder checks the ordinal against its own table and reports
// ErrMemoizationMismatch if the two sides disagree, so a codec that memoizes
// on one side only is caught at the point of divergence.
//
// Payloads are not length prefixed; codecs own their framing.
package binary
