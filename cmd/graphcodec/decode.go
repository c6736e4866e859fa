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
	"io"
	"os"

	"github.com/google/graphcodec/core/app"
	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary/graph"
	"github.com/spf13/pflag"
)

type decodeVerb struct {
	Output string
	stdin  io.Reader
	stdout io.Writer
}

func init() {
	app.AddVerb(&app.Verb{
		Name:       "decode",
		ShortHelp:  "Decodes a graph stream as YAML",
		ShortUsage: "[stream]",
		Auto:       &decodeVerb{stdin: os.Stdin, stdout: os.Stdout},
	})
}

func (verb *decodeVerb) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&verb.Output, "output", "o", "-", "the file to write, - for stdout")
}

func (verb *decodeVerb) Run(ctx context.Context, flags *pflag.FlagSet) error {
	in, name, closeIn, err := openInput(flags, verb.stdin)
	if err != nil {
		return err
	}
	defer closeIn()
	c := graph.New(standardRegistry())
	value, header, err := c.Decode(ctx, in)
	if err != nil {
		return log.Errf(ctx, err, "Decoding %v", name)
	}
	log.D(ctx, "Decoded %v", header)
	out, closeOut, err := createOutput(verb.Output, verb.stdout)
	if err != nil {
		return err
	}
	if err := RenderYAML(out, value); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
