// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fglob/internal/meta"
	"github.com/staranto/fglob/internal/output"
	"github.com/staranto/fglob/internal/pattern"
	"github.com/staranto/fglob/internal/timeit"
)

var matchExamples = [][2]string{
	{`fglob match 'runs/run-{run:d}/nodes{n:d}.csv'`, "one row per run with typed run and n columns"},
	{`fglob match 'runs/*/{name}.json' -T`, "add the template column with placeholders kept"},
	{`fglob match 'data/**/{x:f}.txt' --stat -s -size`, "largest files first"},
	{`fglob match 'runs/{run:d}/{name}' -f 'run>3' -o json`, "filter rows and emit json"},
}

// MatchCommandAction is the action handler for the "match" subcommand. It
// walks the filesystem for entries matching the template and prints one row
// per match.
func MatchCommandAction(ctx context.Context, cmd *cli.Command) (err error) {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd, "match") {
		return nil
	}

	template := cmd.Args().First()
	if template == "" {
		output.DumpExamples(cmd.Root().Writer, matchExamples)
		return fmt.Errorf("match: a template is required")
	}

	if cmd.Bool("schema") {
		columns, err := matchColumns(template, cmd)
		if err != nil {
			return err
		}
		output.DumpSchema(cmd.Root().Writer, template, columns)
		return nil
	}

	timed(cmd)
	defer timeit.Start("match").Stop(&err)

	opts := []pattern.Option{
		pattern.WithFs(metaFs(m)),
		pattern.WithWarnings(cmd.Root().ErrWriter),
	}
	if cmd.Bool("template") {
		opts = append(opts, pattern.WithTemplate())
	}

	table, err := pattern.MatchTable(template, opts...)
	if err != nil {
		return err
	}

	if cmd.Bool("stat") {
		if err := statRows(m, table.Rows); err != nil {
			return err
		}
		table.Columns = append(table.Columns, "size", "modified")
	}

	if cmd.Bool("chop") {
		chopPrefix(table.Rows, "filename", string(filepath.Separator))
	}

	attrs := BuildAttrs(cmd, table.Columns...)
	log.Debugf("attrs: %v", attrs)

	return EmitRows(table.Rows, attrs, cmd)
}

// statRows adds size and modified columns to every row.
func statRows(m meta.Meta, rows []pattern.Fields) error {
	fsys := metaFs(m)
	for i := range rows {
		path, _ := rows[i].Value("filename").(string)
		fi, err := fsys.Stat(path)
		if err != nil {
			return &pattern.IOError{Path: path, Err: err}
		}
		rows[i].Set("size", fi.Size())
		rows[i].Set("modified", fi.ModTime().UTC().Format(time.RFC3339))
	}
	return nil
}

// matchColumns lists the columns match would produce for template.
func matchColumns(template string, cmd *cli.Command) ([]output.Column, error) {
	tpl, err := pattern.Parse(template)
	if err != nil {
		return nil, err
	}

	var columns []output.Column
	for _, f := range tpl.Fields() {
		columns = append(columns, output.Column{Name: f.Name, Kind: f.Kind.String()})
	}
	columns = append(columns, output.Column{Name: "filename", Kind: "string"})
	if cmd.Bool("template") {
		columns = append(columns, output.Column{Name: "template", Kind: "string"})
	}
	if cmd.Bool("stat") {
		columns = append(columns,
			output.Column{Name: "size", Kind: "int"},
			output.Column{Name: "modified", Kind: "string"})
	}
	return columns, nil
}

// MatchCommandBuilder constructs the cli.Command for "match", wiring
// metadata, flags, and action/validator handlers.
func MatchCommandBuilder(meta meta.Meta) *cli.Command {
	cb := CommandBuilder{
		Name:      "match",
		Usage:     "list entries matching a template",
		UsageText: `fglob match <template> [options]`,
		Meta:      meta,
		Template:  true,
		Action:    MatchCommandAction,
		Flags: []cli.Flag{
			newSchemaFlag(),
			&cli.BoolFlag{
				Name:  "chop",
				Usage: "chop common leading directories from filenames",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("match.chop", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "stat",
				Usage: "include size and modified columns",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("match.stat", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
			&cli.BoolFlag{
				Name:    "template",
				Aliases: []string{"T"},
				Usage:   "include the template column",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("match.template", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
		},
	}
	return cb.Build()
}
