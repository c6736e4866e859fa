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
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

type encodeVerb struct {
	StreamFlags
	Input  string
	stdin  io.Reader
	stdout io.Writer
}

func init() {
	app.AddVerb(&app.Verb{
		Name:       "encode",
		ShortHelp:  "Encodes a YAML, JSON or CBOR document as a graph stream",
		ShortUsage: "[document]",
		Auto:       &encodeVerb{stdin: os.Stdin, stdout: os.Stdout},
	})
}

func (verb *encodeVerb) BindFlags(flags *pflag.FlagSet) {
	verb.StreamFlags.bind(flags)
	flags.StringVarP(&verb.Input, "input", "i", string(Auto), "the document type: auto, yaml, json or cbor")
}

func (verb *encodeVerb) Run(ctx context.Context, flags *pflag.FlagSet) error {
	if err := verb.apply(ctx, flags, &verb.Input); err != nil {
		return err
	}
	c, err := verb.codecs()
	if err != nil {
		return err
	}
	docType, err := ParseDocumentType(verb.Input)
	if err != nil {
		return err
	}
	in, name, closeIn, err := openInput(flags, verb.stdin)
	if err != nil {
		return err
	}
	defer closeIn()
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "Reading %v", name)
	}
	docType = docType.Detect(name)
	value, err := ParseDocument(data, docType)
	if err != nil {
		return err
	}

	out, closeOut, err := createOutput(verb.Output, verb.stdout)
	if err != nil {
		return err
	}
	stats, err := c.Encode(ctx, value, out, verb.Memoize)
	if err != nil {
		closeOut()
		return err
	}
	ctx = log.V{
		"input":  name,
		"type":   docType,
		"format": c.Format(),
	}.Bind(ctx)
	log.I(ctx, "Encoded %v", stats)
	return closeOut()
}
