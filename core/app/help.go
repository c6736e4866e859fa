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
	"fmt"
	"io"
	"os"
)

// UsageOutput is where usage text is written.
var UsageOutput io.Writer = os.Stderr

// Usage writes message followed by the usage information of v and any verb
// selected below it to w.
func Usage(w io.Writer, v *Verb, message string) {
	if message != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, message)
		fmt.Fprintln(w)
	}
	verbShorthelp(w, v)
	fmt.Fprint(w, "Usage:")
	verbUsage(w, v)
	verbHelp(w, v)
	fmt.Fprint(w, UsageFooter)
}

func verbShorthelp(w io.Writer, v *Verb) {
	if v.ShortHelp != "" {
		fmt.Fprintf(w, "%s: %s\n", v.Name, v.ShortHelp)
	}
	if v.selected != nil {
		verbShorthelp(w, v.selected)
	}
}

func verbUsage(w io.Writer, v *Verb) {
	fmt.Fprintf(w, " %s", v.Name)
	if v.Flags().HasAvailableFlags() {
		fmt.Fprintf(w, " [%s-flags]", v.Name)
	}
	if v.selected != nil {
		verbUsage(w, v.selected)
		return
	}
	switch {
	case v.ShortUsage != "":
		fmt.Fprintf(w, " %s", v.ShortUsage)
	case len(v.verbs) > 0:
		fmt.Fprint(w, " verb [args]")
	}
	fmt.Fprintln(w)
}

func verbHelp(w io.Writer, v *Verb) {
	if v.Flags().HasAvailableFlags() {
		fmt.Fprintf(w, "%s-flags:\n", v.Name)
		fmt.Fprint(w, v.Flags().FlagUsages())
	}
	if v.selected != nil {
		verbHelp(w, v.selected)
		return
	}
	if len(v.verbs) > 0 {
		fmt.Fprintf(w, "%s verbs:\n", v.Name)
		longest := 0
		for _, child := range v.verbs {
			if longest < len(child.Name) {
				longest = len(child.Name)
			}
		}
		for _, child := range v.verbs {
			fmt.Fprintf(w, "    %-*s - %s\n", longest, child.Name, child.ShortHelp)
		}
	}
}
