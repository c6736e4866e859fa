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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/graphcodec/core/app"
	"github.com/google/graphcodec/framework/binary"
	"github.com/google/graphcodec/framework/binary/graph"
	"github.com/spf13/pflag"
)

type inspectVerb struct {
	Registry bool
	stdin    io.Reader
	stdout   io.Writer
}

func init() {
	app.AddVerb(&app.Verb{
		Name:       "inspect",
		ShortHelp:  "Prints the header and statistics of a graph stream",
		ShortUsage: "[stream]",
		Auto:       &inspectVerb{stdin: os.Stdin, stdout: os.Stdout},
	})
}

func (verb *inspectVerb) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&verb.Registry, "registry", false, "print the registry instead of a stream")
}

func (verb *inspectVerb) Run(ctx context.Context, flags *pflag.FlagSet) error {
	c := graph.New(standardRegistry())
	if verb.Registry {
		printRegistry(verb.stdout, c)
		return nil
	}
	in, _, closeIn, err := openInput(flags, verb.stdin)
	if err != nil {
		return err
	}
	defer closeIn()
	h, err := graph.ReadHeader(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(verb.stdout, "format:      %v\n", h.Format)
	fmt.Fprintf(verb.stdout, "memoized:    %v\n", h.Memoized)
	fmt.Fprintf(verb.stdout, "fingerprint: %v\n", h.Fingerprint.Hex())
	if err := c.Check(h); err != nil {
		return err
	}
	value, stats, err := c.DeserializeFrom(ctx, in, h.Format, h.Memoized)
	if err != nil {
		return err
	}
	fmt.Fprintf(verb.stdout, "root:        %T\n", value)
	fmt.Fprintf(verb.stdout, "stats:       %v\n", stats)
	return nil
}

func printRegistry(w io.Writer, c *graph.Codecs) {
	r := c.Registry()
	fmt.Fprintf(w, "fingerprint: %v\n", r.Fingerprint().Hex())
	r.VisitConstants(func(tag binary.Tag, v interface{}) {
		fmt.Fprintf(w, "constant %d: %v\n", tag, v)
	})
	r.Visit(func(d *binary.Descriptor) {
		fmt.Fprintf(w, "codec %v\n", d)
	})
}
