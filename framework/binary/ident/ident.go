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

// Package ident provides identity surrogates for Go values.
//
// Two values have the same Key only if they refer to the same storage: the
// same pointer target, map, backing array window or string data. Structurally
// equal values held in distinct storage have distinct keys.
package ident

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Key is the identity of a value: its dynamic type, the address of the
// storage it refers to, and for slices and strings the length of the window.
type Key struct {
	Type    reflect.Type
	Address uintptr
	Length  int
}

func (k Key) String() string {
	if k.Length != 0 {
		return fmt.Sprintf("%v@%#x[%d]", k.Type, k.Address, k.Length)
	}
	return fmt.Sprintf("%v@%#x", k.Type, k.Address)
}

// Of returns the identity of v. The second result is false if v has no
// stable identity: nil, scalars, structs and arrays held by value, empty
// strings and slices, and pointers to zero sized values.
func Of(v interface{}) (Key, bool) {
	if v == nil {
		return Key{}, false
	}
	if s, ok := v.(string); ok {
		if len(s) == 0 {
			return Key{}, false
		}
		return Key{
			Type:    reflect.TypeOf(v),
			Address: uintptr(unsafe.Pointer(unsafe.StringData(s))),
			Length:  len(s),
		}, true
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Ptr:
		if r.IsNil() || r.Type().Elem().Size() == 0 {
			return Key{}, false
		}
		return Key{Type: r.Type(), Address: r.Pointer()}, true
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if r.IsNil() {
			return Key{}, false
		}
		return Key{Type: r.Type(), Address: r.Pointer()}, true
	case reflect.Slice:
		if r.Len() == 0 || r.Type().Elem().Size() == 0 {
			return Key{}, false
		}
		return Key{Type: r.Type(), Address: r.Pointer(), Length: r.Len()}, true
	case reflect.String:
		s := r.String()
		if len(s) == 0 {
			return Key{}, false
		}
		return Key{
			Type:    r.Type(),
			Address: uintptr(unsafe.Pointer(unsafe.StringData(s))),
			Length:  len(s),
		}, true
	default:
		return Key{}, false
	}
}

// IsNil returns true for the untyped nil and for typed nil pointers, maps,
// slices, channels, functions and interfaces.
func IsNil(v interface{}) bool {
	if v == nil {
		return true
	}
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return r.IsNil()
	default:
		return false
	}
}

// Same returns true if a and b have the same identity.
func Same(a, b interface{}) bool {
	ka, ok := Of(a)
	if !ok {
		return false
	}
	kb, ok := Of(b)
	return ok && ka == kb
}
