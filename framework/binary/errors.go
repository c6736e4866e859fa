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

import "github.com/google/graphcodec/core/fault"

const (
	// ErrUnregisteredType is returned when a value's dynamic type has no codec.
	ErrUnregisteredType = fault.Const("Unregistered type")
	// ErrUnknownTag is returned when a stream holds a tag the registry does not
	// assign. It indicates a corrupt stream or registry skew between writer
	// and reader.
	ErrUnknownTag = fault.Const("Unknown tag")
	// ErrDanglingBackreference is returned when a backreference names an
	// ordinal that has not been recorded.
	ErrDanglingBackreference = fault.Const("Dangling backreference")
	// ErrMemoizationMismatch is returned when the memoization decisions of the
	// writer and the reader diverge.
	ErrMemoizationMismatch = fault.Const("Memoization mismatch")
)
