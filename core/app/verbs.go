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

package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Verb holds information about a runnable api command.
type Verb struct {
	Name       string                                                // The name of the command
	Run        func(ctx context.Context, flags *pflag.FlagSet) error // the action for the command
	Auto       AutoVerb                                              // If set, the Run and Flags will be automatically filled from this.
	ShortHelp  string                                                // Help for the purpose of the command
	ShortUsage string                                                // Help for how to use the command
	flags      *pflag.FlagSet
	verbs      []*Verb
	selected   *Verb
}

// AutoVerb is the interface for objects that want to
// automatically configure a verb.
type AutoVerb interface {
	// Run is the method to perform the action associated with a verb.
	// See Verb.Run for more details.
	Run(ctx context.Context, flags *pflag.FlagSet) error
}

// FlagBinder is implemented by AutoVerbs that accept flags.
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

var globalVerbs Verb

// Flags returns the flag set of the verb.
func (v *Verb) Flags() *pflag.FlagSet {
	if v.flags == nil {
		v.flags = pflag.NewFlagSet(v.Name, pflag.ContinueOnError)
		v.flags.SetOutput(io.Discard)
	}
	return v.flags
}

// Add adds a new verb to the supported set, it will panic if a
// duplicate name is encountered.
func (v *Verb) Add(child *Verb) {
	if child.Auto != nil {
		if b, ok := child.Auto.(FlagBinder); ok {
			b.BindFlags(child.Flags())
		}
		if child.Run == nil {
			child.Run = child.Auto.Run
		}
	}
	for _, existing := range v.verbs {
		if existing.Name == child.Name {
			panic(errors.Errorf("Duplicate verb name %s", child.Name))
		}
	}
	v.verbs = append(v.verbs, child)
	// Flags after the verb name belong to the verb.
	v.Flags().SetInterspersed(false)
	if v.Run == nil {
		v.Run = v.run
	}
}

// Filter returns the filtered list of verbs who's names match the specified prefix.
// An exact match is returned on its own.
func (v *Verb) Filter(prefix string) (result []*Verb) {
	for _, child := range v.verbs {
		if child.Name == prefix {
			return []*Verb{child}
		}
		if strings.HasPrefix(child.Name, prefix) {
			result = append(result, child)
		}
	}
	return result
}

// Invoke runs a verb, handing it the command line arguments it should process.
func (v *Verb) Invoke(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return v.usage("Must supply a verb to %s", v.Name)
	}
	verb := args[0]
	matches := v.Filter(verb)
	switch len(matches) {
	case 1:
		v.selected = matches[0]
		err := v.selected.Flags().Parse(args[1:])
		switch {
		case err == pflag.ErrHelp:
			Usage(UsageOutput, v, "")
			return nil
		case err != nil:
			return v.usage("%v", err)
		}
		return v.selected.Run(ctx, v.selected.Flags())
	case 0:
		if verb == "help" {
			Usage(UsageOutput, v, "")
			return nil
		}
		return v.usage("Verb '%s' is unknown", verb)
	default:
		return v.usage("Verb '%s' is ambiguous", verb)
	}
}

func (v *Verb) usage(msg string, args ...interface{}) error {
	message := fmt.Sprintf(msg, args...)
	Usage(UsageOutput, v, message)
	return errors.Wrap(ErrUsage, message)
}

func (v *Verb) run(ctx context.Context, flags *pflag.FlagSet) error {
	return v.Invoke(ctx, flags.Args())
}

// AddVerb adds a new verb to the supported set, it will panic if a
// duplicate name is encountered.
func AddVerb(v *Verb) {
	globalVerbs.Add(v)
}

// FilterVerbs returns the filtered list of verbs who's names match the specified
// prefix.
func FilterVerbs(prefix string) (result []*Verb) {
	return globalVerbs.Filter(prefix)
}

// VerbMain is a task that can be handed to Run to invoke the verb handling system.
func VerbMain(ctx context.Context) error {
	return globalVerbs.Invoke(ctx, globalVerbs.Flags().Args())
}
