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

// The graphcodec command converts documents to and from memoized object
// graph streams.
package main

import (
	"github.com/google/graphcodec/core/app"
)

func main() {
	app.Name = "graphcodec"
	app.ShortHelp = "graphcodec encodes, decodes and inspects object graph streams"
	app.Run(app.VerbMain)
}
