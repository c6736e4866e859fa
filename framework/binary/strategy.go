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

import "fmt"

// Strategy is a codec's memoization preference.
type Strategy int

const (
	// DoNotMemoize values are encoded in full every time they are met.
	DoNotMemoize Strategy = iota
	// MemoizeAfter values are recorded once their payload is complete.
	MemoizeAfter
	// MemoizeBefore values are recorded before their payload. The decoding
	// codec should call RegisterInitialValue before it decodes any child that
	// may refer back to the value.
	MemoizeBefore
)

func (s Strategy) String() string {
	switch s {
	case DoNotMemoize:
		return "DoNotMemoize"
	case MemoizeAfter:
		return "MemoizeAfter"
	case MemoizeBefore:
		return "MemoizeBefore"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}
