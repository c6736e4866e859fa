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

// Package app provides the scaffolding of a verb based command line
// application: flag parsing, logging setup and exit codes.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/graphcodec/core/fault"
	"github.com/google/graphcodec/core/log"
	"github.com/pkg/errors"
)

var (
	// Name is the full name of the application
	Name = strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	// ShortHelp should be set to add a help message to the usage text.
	ShortHelp = ""
	// ShortUsage is usage text for the additional non-flag arguments.
	ShortUsage = ""
	// UsageFooter is printed at the bottom of the usage text
	UsageFooter = ""
)

// ErrUsage is returned for command lines that could not be parsed.
const ErrUsage = fault.Const("Usage")

const (
	exitFailure = 1
	exitUsage   = 2
)

// Run parses the main command line arguments, builds the primary context
// and runs main with it. It exits the process with a non zero status if
// main fails. Logs are written to stderr, stdout belongs to the verbs.
func Run(main func(ctx context.Context) error) {
	if code := run(context.Background(), os.Args[1:], log.To(os.Stderr), main); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, args []string, to log.Writer, main func(ctx context.Context) error) int {
	flags := logDefaults()
	globalVerbs.Name = Name
	globalVerbs.ShortHelp = ShortHelp
	globalVerbs.ShortUsage = ShortUsage
	globalVerbs.flags = nil
	root := globalVerbs.Flags()
	root.SetInterspersed(false)
	flags.Bind(root)
	if err := root.Parse(args); err != nil {
		Usage(UsageOutput, &globalVerbs, err.Error())
		return exitUsage
	}
	ctx = prepareContext(ctx, &flags, to)
	err := fault.Capture(func() error { return main(ctx) })
	switch {
	case err == nil:
		return 0
	case errors.Cause(err) == ErrUsage:
		return exitUsage
	default:
		log.E(ctx, "Main failed\nError: %v", err)
		return exitFailure
	}
}
