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

package log_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/graphcodec/core/log"
)

var testClock log.Clock

func init() {
	t, err := time.Parse("Mon Jan _2 15:04:05.999 2006", "Mon Jan 22 12:34:56.789 2000")
	if err != nil {
		panic(err)
	}
	testClock = log.FixedClock(t)
}

type testMessage struct {
	msg      string
	args     []interface{}
	values   log.V
	severity log.Severity
	tag      string
	trace    string

	raw      string
	brief    string
	normal   string
	detailed string
}

func (m testMessage) send(h log.Handler) {
	ctx := context.Background()
	ctx = log.PutHandler(ctx, h)
	ctx = log.PutTag(ctx, m.tag)
	ctx = log.PutClock(ctx, testClock)
	if m.trace != "" {
		ctx = log.Enter(ctx, m.trace)
	}
	ctx = m.values.Bind(ctx)
	log.From(ctx).Logf(m.severity, false, m.msg, m.args...)
}

var testMessages = []testMessage{
	{
		msg:      "plain warning",
		severity: log.Warning,

		raw:      "plain warning",
		brief:    "W: plain warning",
		normal:   "12:34:56.789 W: plain warning",
		detailed: "12:34:56.789 Warning: plain warning",
	}, {
		msg:      "info with values",
		severity: log.Info,
		values:   log.V{"tag": 3, "type": "string"},

		raw:      "info with values",
		brief:    "I: info with values",
		normal:   "12:34:56.789 I: info with values (tag: 3, type: string)",
		detailed: "12:34:56.789 Info: info with values \n  tag: 3\n  type: string",
	}, {
		msg:      "decoded %d values",
		args:     []interface{}{7},
		severity: log.Debug,
		tag:      "graph",
		trace:    "decode",

		raw:      "decoded 7 values",
		brief:    "D: decoded 7 values",
		normal:   "12:34:56.789 D: [decode] [graph] decoded 7 values",
		detailed: "12:34:56.789 Debug: [decode] [graph] decoded 7 values",
	},
}

func TestStyles(t *testing.T) {
	for _, test := range testMessages {
		for _, s := range []struct {
			style    log.Style
			expected string
		}{
			{log.Raw, test.raw},
			{log.Brief, test.brief},
			{log.Normal, test.normal},
			{log.Detailed, test.detailed},
		} {
			w, buf := log.Buffer()
			test.send(s.style.Handler(w))
			if got := buf.String(); got != s.expected {
				t.Errorf("%s(%s) gave unexpected output.\nExpected: %q\nGot:      %q",
					s.style.Name, test.msg, s.expected, got)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	w, buf := log.Buffer()
	ctx := log.PutHandler(context.Background(), log.Raw.Handler(w))
	ctx = log.PutFilter(ctx, log.SeverityFilter(log.Warning))
	log.I(ctx, "hidden")
	log.W(ctx, "shown")
	log.E(ctx, "also shown")
	if got, expect := buf.String(), "shown\nalso shown"; got != expect {
		t.Errorf("Filtered output was %q, expected %q", got, expect)
	}
}

func TestShadowedValues(t *testing.T) {
	ctx := log.V{"ordinal": 1}.Bind(context.Background())
	ctx = log.V{"ordinal": 2}.Bind(ctx)
	m := log.From(ctx).Message(log.Info, false, "msg")
	if len(m.Values) != 1 || m.Values[0].Value != 2 {
		t.Errorf("Expected the innermost binding to win, got %v", m.Values)
	}
}

func TestErr(t *testing.T) {
	cause := errors.New("short read")
	ctx := log.V{"tag": 4}.Bind(context.Background())
	err := log.Errf(ctx, cause, "decoding %s", "list")
	if !errors.Is(err, cause) {
		t.Errorf("Err did not wrap its cause")
	}
	if got, expect := err.Error(), "decoding list (tag: 4)\n   Cause: short read"; got != expect {
		t.Errorf("Err message was %q, expected %q", got, expect)
	}
}

func TestParseSeverity(t *testing.T) {
	for _, test := range []struct {
		name   string
		expect log.Severity
		ok     bool
	}{
		{"Debug", log.Debug, true},
		{"W", log.Warning, true},
		{"Fatal", log.Fatal, true},
		{"error", log.Error, true},
		{"loud", log.Info, false},
	} {
		got, ok := log.ParseSeverity(test.name)
		if got != test.expect || ok != test.ok {
			t.Errorf("ParseSeverity(%q) = %v, %v expected %v, %v", test.name, got, ok, test.expect, test.ok)
		}
	}
}

type recorder struct{ fatal, errors, logs []string }

func (r *recorder) Fatal(args ...interface{}) { r.fatal = append(r.fatal, fmt.Sprint(args...)) }
func (r *recorder) Error(args ...interface{}) { r.errors = append(r.errors, fmt.Sprint(args...)) }
func (r *recorder) Log(args ...interface{})   { r.logs = append(r.logs, fmt.Sprint(args...)) }

func TestTesting(t *testing.T) {
	r := &recorder{}
	ctx := log.Testing(r)
	log.I(ctx, "hello %d", 1)
	log.D(ctx, "quiet")
	log.E(ctx, "broken")
	if len(r.logs) != 2 || len(r.errors) != 1 || len(r.fatal) != 0 {
		t.Fatalf("Got logs %q, errors %q, fatal %q", r.logs, r.errors, r.fatal)
	}
	if !strings.Contains(r.logs[0], "hello 1") || !strings.Contains(r.errors[0], "broken") {
		t.Errorf("Unexpected messages %q %q", r.logs[0], r.errors[0])
	}
}
