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

package assert

import (
	"reflect"
	"unsafe"

	"github.com/google/go-cmp/cmp"
)

// Unexported fields take part in the comparison; the values under test are
// produced by decoders that fill every field.
var deepOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func deepEqual(value, expect interface{}) bool {
	return cmp.Equal(value, expect, deepOptions...)
}

func deepDiff(value, expect interface{}) string {
	return cmp.Diff(value, expect, deepOptions...)
}

// identity returns the address that backs a reference value and whether the
// value is a reference at all.
func identity(v interface{}) (uintptr, bool) {
	r := reflect.ValueOf(v)
	switch r.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return r.Pointer(), true
	case reflect.Slice:
		if r.Len() == 0 {
			return 0, false
		}
		return r.Pointer(), true
	case reflect.String:
		if r.Len() == 0 {
			return 0, false
		}
		return uintptr(unsafe.Pointer(unsafe.StringData(r.String()))), true
	default:
		return 0, false
	}
}
