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

	"github.com/google/graphcodec/core/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// LogFlags controls the application logging.
type LogFlags struct {
	Level log.Severity
	Style log.Style
}

func logDefaults() LogFlags {
	return LogFlags{
		Level: log.Info,
		Style: log.Normal,
	}
}

// Bind adds the logging flags to fs.
func (f *LogFlags) Bind(fs *pflag.FlagSet) {
	fs.Var((*severityValue)(&f.Level), "log-level", "the minimum severity to log: verbose, debug, info, warning, error or fatal")
	fs.Var((*styleValue)(&f.Style), "log-style", "the log message style: raw, brief, normal or detailed")
}

func prepareContext(ctx context.Context, flags *LogFlags, to log.Writer) context.Context {
	ctx = log.PutFilter(ctx, log.SeverityFilter(flags.Level))
	ctx = log.PutHandler(ctx, flags.Style.Handler(to))
	ctx = log.PutTag(ctx, Name)
	return ctx
}

type severityValue log.Severity

func (v *severityValue) String() string { return log.Severity(*v).String() }
func (v *severityValue) Type() string   { return "severity" }

func (v *severityValue) Set(s string) error {
	severity, ok := log.ParseSeverity(s)
	if !ok {
		return errors.Errorf("Unknown severity %q", s)
	}
	*v = severityValue(severity)
	return nil
}

type styleValue log.Style

func (v *styleValue) String() string { return v.Name }
func (v *styleValue) Type() string   { return "style" }

func (v *styleValue) Set(s string) error {
	style, ok := log.FindStyle(s)
	if !ok {
		return errors.Errorf("Unknown log style %q", s)
	}
	*v = styleValue(style)
	return nil
}
