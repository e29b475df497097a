// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fglob/internal/meta"
	"github.com/staranto/fglob/internal/paths"
	"github.com/staranto/fglob/internal/pattern"
	"github.com/staranto/fglob/internal/timeit"
)

// PathsCommandAction resolves every name argument (literal path, glob or
// template) and prints one row per path.
func PathsCommandAction(ctx context.Context, cmd *cli.Command) (err error) {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd, "paths") {
		return nil
	}

	names := cmd.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("paths: at least one name is required")
	}

	timed(cmd)
	defer timeit.Start("paths").Stop(&err)

	fsys := metaFs(m)
	opts := []paths.Option{
		paths.WithFs(fsys),
		paths.WithWarnings(cmd.Root().ErrWriter),
		paths.WithFileName(cmd.String("file-name")),
		paths.WithExclude(cmd.StringSlice("exclude")...),
	}
	if keep := typeFilter(fsys, cmd.String("type")); keep != nil {
		opts = append(opts, paths.WithFilter(keep))
	}

	results, err := paths.Process(names, opts...)
	if err != nil {
		return err
	}

	var table pattern.Table
	for _, r := range results {
		var row pattern.Fields
		row.Set("path", r.Path)
		for _, k := range r.Fields.Keys() {
			if k == "filename" {
				continue
			}
			row.Set(k, r.Fields.Value(k))
		}
		table.Add(row)
	}

	attrs := BuildAttrs(cmd, table.Columns...)
	log.Debugf("attrs: %v", attrs)

	return EmitRows(table.Rows, attrs, cmd)
}

// typeFilter returns a filter keeping only files ("f") or directories ("d").
func typeFilter(fsys afero.Fs, kind string) func(string) bool {
	if kind == "" {
		return nil
	}
	return func(path string) bool {
		dir, err := afero.IsDir(fsys, path)
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("type filter")
			return false
		}
		return dir == (kind == "d")
	}
}

// PathsCommandBuilder constructs the cli.Command for "paths".
func PathsCommandBuilder(meta meta.Meta) *cli.Command {
	cb := CommandBuilder{
		Name:      "paths",
		Usage:     "resolve paths, globs and templates",
		UsageText: `fglob paths <name>... [options]`,
		Meta:      meta,
		Action:    PathsCommandAction,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "drop paths matching the glob, may be repeated",
			},
			NameSpacedValueChainFlagFromConfigFile("paths", meta.Config.Source, &cli.StringFlag{
				Name:  "file-name",
				Usage: "search below each name for this file",
			}),
			NameSpacedValueChainFlagFromConfigFile("paths", meta.Config.Source, &cli.StringFlag{
				Name:  "type",
				Usage: "keep only files (f) or directories (d)",
				Validator: func(value string) error {
					return FlagValidators(value, TypeValidator)
				},
			}),
		},
	}
	return cb.Build()
}
