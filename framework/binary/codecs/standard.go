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
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/registry"
)

// Builtins returns the codecs for the Go builtin types that decoders of
// generic documents produce.
func Builtins() []binary.Codec {
	return []binary.Codec{
		String(),
		Bool(),
		Int(),
		Int64(),
		Uint64(),
		Float64(),
		Bytes(),
		Slice(),
		Map(),
	}
}

// Standard returns a registry builder holding the Builtins. More codecs and
// constants can be added before it is built.
func Standard() *registry.Builder {
	return registry.NewBuilder().Add(Builtins()...)
}
