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

package graph

import (
	"fmt"
	"io"

	"github.com/google/graphcodec/core/data/pod"
	"github.com/google/graphcodec/framework/binary/coded"
	"github.com/google/graphcodec/framework/binary/vle"
	"github.com/pkg/errors"
)

// Format selects the pod encoding of a stream.
type Format byte

const (
	// VLE uses the prefix variable length encoding of package vle.
	VLE Format = 'v'
	// Coded uses the protobuf varints of package coded.
	Coded Format = 'c'
)

// Formats lists the supported formats.
var Formats = []Format{VLE, Coded}

func (f Format) String() string {
	switch f {
	case VLE:
		return "vle"
	case Coded:
		return "coded"
	default:
		return fmt.Sprintf("Format(%#x)", byte(f))
	}
}

// Valid returns true if f is a supported format.
func (f Format) Valid() bool { return f == VLE || f == Coded }

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, errors.Errorf("Unknown format %q, expected one of %v", name, Formats)
}

// Writer returns a pod.Writer for the format.
func (f Format) Writer(w io.Writer) pod.Writer {
	if f == Coded {
		return coded.Writer(w)
	}
	return vle.Writer(w)
}

// Reader returns a pod.Reader for the format.
func (f Format) Reader(r io.Reader) pod.Reader {
	if f == Coded {
		return coded.Reader(r)
	}
	return vle.Reader(r)
}
