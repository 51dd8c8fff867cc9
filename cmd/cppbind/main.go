// Copyright 2024 The cppbind Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cppbind/cppbind/internal/config"
	"github.com/cppbind/cppbind/internal/cppchecker"
	"github.com/cppbind/cppbind/internal/cppparser"
	"github.com/cppbind/cppbind/internal/database"
	"github.com/cppbind/cppbind/internal/gogen"
	"github.com/cppbind/cppbind/internal/pipeline"
	"github.com/cppbind/cppbind/internal/tlitem"
)

var configPath string
var databaseOverride string
var outputOverride string

func main() {
	// glog parses its verbosity flags from the global flag.CommandLine;
	// cobra's pflag set is separate, so both are wired the way the
	// teacher's cmd/kati/main.go wires flag.Parse alongside kati's own
	// flags.
	flag.CommandLine.Parse([]string{})

	root := &cobra.Command{
		Use: "cppbind",
		Short: "Generates Go bindings for a C++ library",
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.PersistentFlags().StringVar(&configPath, "config", "cppbind.json", "path to the module configuration file")
	root.PersistentFlags().StringVar(&databaseOverride, "database", "", "override the configured database path")
	root.PersistentFlags().StringVar(&outputOverride, "output", "", "override the configured output directory")

	root.AddCommand(generateCmd())
	root.AddCommand(stepsCmd())
	root.AddCommand(inspectDBCmd())

	if err := root.Execute(); err != nil {
		glog.Exit(err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	config.Override{DatabasePath: databaseOverride, OutputDir: outputOverride}.Apply(cfg)
	return cfg, nil
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use: "generate",
		Short: "Run the full pipeline and write generated Go source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openOrCreateDatabase(cfg)
			if err != nil {
				return err
			}

			p := &pipeline.Pipeline{
				Config: cfg,
				DB: db,
				Parser: &cppparser.TreeSitterParser{TargetRoots: cfg.TargetIncludePaths},
				Checker: &cppchecker.CcChecker{},
			}
			if err := p.Run(cmd.Context()); err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return err
			}
			writer := &gogen.Writer{PackageName: cfg.ModuleName}
			modules := moduleNamesOf(db)
			for _, mod := range modules {
				path := filepath.Join(cfg.OutputDir, moduleFileName(mod))
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				err = writer.EmitModule(f, db, mod)
				f.Close()
				if err != nil {
					return err
				}
				glog.Infof("wrote %s", path)
			}

			data, err := database.SaveGob(db)
			if err != nil {
				return err
			}
			return os.WriteFile(cfg.DatabasePath, data, 0o644)
		},
	}
}

func stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use: "steps",
		Short: "List the pipeline steps in execution order",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range pipeline.Steps {
				fmt.Println(s)
			}
			return nil
		},
	}
}

func inspectDBCmd() *cobra.Command {
	return &cobra.Command{
		Use: "inspect-db",
		Short: "Print every item path stored in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(cfg.DatabasePath)
			if err != nil {
				return err
			}
			db, err := database.LoadGob(data)
			if err != nil {
				return err
			}
			for _, p := range db.SortedEntryPaths() {
				fmt.Println(p)
			}
			return nil
		},
	}
}

func openOrCreateDatabase(cfg *config.Config) (*database.Database, error) {
	if data, err := os.ReadFile(cfg.DatabasePath); err == nil {
		db, err := database.LoadGob(data)
		if err == nil {
			if verr := database.ValidateSchema(db.SchemaVersion); verr != nil {
				glog.Warningf("database schema outdated, starting fresh: %v", verr)
			} else {
				return db, nil
			}
		}
	}
	return database.New(cfg.ModuleName, cfg.ModuleVersion, cfg.MovableClasses), nil
}

func moduleNamesOf(db *database.Database) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range db.Entries() {
		if e.TLItem == nil {
			continue
		}
		var path []string
		switch e.TLItem.Path {
		case tlitem.KindStruct:
			path = e.TLItem.Struct.Path.Segments
		case tlitem.KindEnum:
			path = e.TLItem.Enum.Path.Segments
		case tlitem.KindFunction:
			path = e.TLItem.Function.Path.Segments
		default:
			continue
		}
		if len(path) == 0 {
			continue
		}
		if !seen[path[0]] {
			seen[path[0]] = true
			out = append(out, path[0])
		}
	}
	if len(out) == 0 {
		out = append(out, db.ModuleName)
	}
	return out
}

func moduleFileName(mod string) string {
	return mod + ".go"
}
