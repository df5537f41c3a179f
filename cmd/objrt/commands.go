/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"golang.org/x/term"
	"gopkg.in/urfave/cli.v1"

	"dirpx.dev/objrt"
	"dirpx.dev/objrt/config"
	"dirpx.dev/objrt/lang"
)

var (
	classesCommand = cli.Command{
		Action:    classes,
		Name:      "classes",
		Usage:     "List registered classes",
		ArgsUsage: " ",
		Description: `
Prints one line per registered class, in registration order: its qualified
name, its super class and the Go type backing it. Columns are aligned on a
terminal and tab-separated otherwise.`,
	}
	fornameCommand = cli.Command{
		Action:    forname,
		Name:      "forname",
		Usage:     "Describe classes by qualified name",
		ArgsUsage: "<name> [<name>...]",
		Description: `
Looks up every name and describes the class. The exit status is 1 if any
name is not registered.`,
	}
	configCommand = cli.Command{
		Action:    dumpConfig,
		Name:      "config",
		Usage:     "Show the effective configuration as YAML",
		ArgsUsage: " ",
	}
)

func classes(ctx *cli.Context) error {
	w, flush := tableWriter(ctx.App.Writer)
	fmt.Fprintln(w, "NAME\tSUPER\tGO TYPE")
	for _, c := range objrt.Runtime().Classes() {
		super := "-"
		if s, ok := c.Super(); ok {
			super = s.Name()
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", c.Name(), super, c.GoType())
	}
	return flush()
}

func forname(ctx *cli.Context) error {
	if len(ctx.Args()) == 0 {
		return errors.New("objrt: forname needs at least one class name")
	}
	var missing []string
	for i, name := range ctx.Args() {
		c, err := objrt.ForName(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		if i > 0 {
			fmt.Fprintln(ctx.App.Writer)
		}
		describe(ctx.App.Writer, c)
	}
	if len(missing) > 0 {
		return errors.Wrapf(lang.ErrClassNotFound, "%s", strings.Join(missing, ", "))
	}
	return nil
}

func describe(w io.Writer, c lang.Class) {
	fmt.Fprintln(w, c)
	if s, ok := c.Super(); ok {
		fmt.Fprintf(w, "  extends:  %s\n", s.Name())
	}
	fmt.Fprintf(w, "  go type:  %v\n", c.GoType())
	if d := c.Description(); d != "" {
		fmt.Fprintf(w, "  about:    %s\n", d)
	}
	if m := c.Methods(); len(m) > 0 {
		fmt.Fprintf(w, "  methods:  %s\n", strings.Join(m, ", "))
	}
}

func dumpConfig(ctx *cli.Context) error {
	out, err := config.Marshal(objrt.Config())
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

// tableWriter aligns columns when w is a terminal. The returned flush must
// be called once all rows are written.
func tableWriter(w io.Writer) (io.Writer, func() error) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		return tw, tw.Flush
	}
	return w, func() error { return nil }
}
