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

// objrt inspects the default object runtime: its registered classes and
// its configuration.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"dirpx.dev/objrt"
	"dirpx.dev/objrt/config"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level (debug, info, warn, error)",
		Value: "info",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "objrt"
	app.Usage = "inspect the object runtime"
	app.Version = "0.1.0"
	app.Copyright = "Copyright 2025 The DIRPX Authors"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{configFileFlag, logLevelFlag}
	app.Commands = []cli.Command{
		classesCommand,
		fornameCommand,
		configCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
	app.Before = setup
	return app
}

// setup installs the logger and, when given, the configuration file into
// the default runtime.
func setup(ctx *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ctx.GlobalString(logLevelFlag.Name))); err != nil {
		return errors.Wrap(err, "objrt: --log-level")
	}
	logger := slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	objrt.SetLogger(logger)

	path := ctx.GlobalString(configFileFlag.Name)
	if path == "" {
		return nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	objrt.SetConfig(cfg)
	logger.Debug("configuration loaded", "path", path, "cache", cfg.Cache, "cacheSize", cfg.CacheSize)
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
