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

// Stats counts the records a context wrote or read.
type Stats struct {
	Nulls          int
	Constants      int
	Values         int
	Memoized       int
	Backreferences int
}

func (s Stats) String() string {
	return fmt.Sprintf("nulls: %d constants: %d values: %d memoized: %d backreferences: %d",
		s.Nulls, s.Constants, s.Values, s.Memoized, s.Backreferences)
}
