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

package registry

import (
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/zeebo/blake3"
)

// Fingerprint is a BLAKE3 digest of a registry's tag assignment. Two
// registries with the same fingerprint assign the same tags to the same
// types with the same memoization strategies, so a stream written with one
// can be read with the other.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:8]) }

// Hex returns the full digest in hexadecimal.
func (f Fingerprint) Hex() string { return hex.EncodeToString(f[:]) }

var fingerprintKey = [32]byte{
	'g', 'r', 'a', 'p', 'h', 'c', 'o', 'd', 'e', 'c', '.', 'r', 'e', 'g', 'i', 's',
	't', 'r', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func fingerprint(r *Registry) Fingerprint {
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic(err)
	}
	for i, c := range r.constants {
		fmt.Fprintf(hasher, "constant %d %s\n", i+1, typeName(reflect.TypeOf(c)))
	}
	for _, d := range r.codecs {
		fmt.Fprintf(hasher, "codec %d %s %v\n", d.Tag, typeName(d.Type), d.Codec.Strategy())
	}
	var f Fingerprint
	copy(f[:], hasher.Sum(nil))
	return f
}

// typeName qualifies named types with their package path, so that types with
// the same name in different packages hash differently.
func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	if t.Kind() == reflect.Ptr {
		return "*" + typeName(t.Elem())
	}
	return t.String()
}
