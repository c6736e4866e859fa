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
	"bufio"
	"context"
	"io"
	"os"

	"github.com/google/graphcodec/core/log"
	"github.com/google/graphcodec/framework/binary/codecs"
	"github.com/google/graphcodec/framework/binary/graph"
	"github.com/google/graphcodec/framework/binary/registry"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that supply flag defaults,
// for example GRAPHCODEC_FORMAT or GRAPHCODEC_CONFIG.
const EnvPrefix = "graphcodec"

// StreamFlags are the flags shared by the verbs that write streams.
type StreamFlags struct {
	Format  string
	Memoize bool
	Config  string
	Output  string
}

func (f *StreamFlags) bind(flags *pflag.FlagSet) {
	flags.StringVar(&f.Format, "format", graph.VLE.String(), "the stream format: vle or coded")
	flags.BoolVar(&f.Memoize, "memoize", true, "share repeated references in the stream")
	flags.StringVar(&f.Config, "config", "", "a YAML file supplying flag defaults")
	flags.StringVarP(&f.Output, "output", "o", "-", "the file to write, - for stdout")
}

// apply resolves the settings from, in order of precedence, the command
// line, GRAPHCODEC_* environment variables, the config file and the flag
// defaults.
func (f *StreamFlags) apply(ctx context.Context, flags *pflag.FlagSet, input *string) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return errors.Wrap(err, "Binding flags")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "Reading config %v", path)
		}
		log.D(ctx, "Loaded config %v", path)
	}
	f.Format = v.GetString("format")
	f.Memoize = v.GetBool("memoize")
	if input != nil {
		*input = v.GetString("input")
	}
	return nil
}

func (f *StreamFlags) codecs() (*graph.Codecs, error) {
	format, err := graph.ParseFormat(f.Format)
	if err != nil {
		return nil, err
	}
	return graph.New(standardRegistry(), graph.WithFormat(format)), nil
}

// standardRegistry is the registry of every stream the command handles.
func standardRegistry() *registry.Registry {
	return codecs.Standard().MustBuild()
}

// openInput returns the reader for the single input argument, stdin if the
// argument is missing or -.
func openInput(flags *pflag.FlagSet, stdin io.Reader) (io.Reader, string, func(), error) {
	switch flags.NArg() {
	case 0:
		return stdin, "-", func() {}, nil
	case 1:
	default:
		return nil, "", nil, errors.Errorf("At most one input file expected, got %d", flags.NArg())
	}
	name := flags.Arg(0)
	if name == "-" {
		return stdin, name, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, name, nil, err
	}
	return bufio.NewReader(f), name, func() { f.Close() }, nil
}

// createOutput returns the writer for path, stdout if path is -.
func createOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
