// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fglob/internal/attrs"
	"github.com/staranto/fglob/internal/meta"
	"github.com/staranto/fglob/internal/output"
	"github.com/staranto/fglob/internal/pattern"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr fglob <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "fglob", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitRows marshals rows and passes them to the common output routine.
func EmitRows(rows []pattern.Fields, al attrs.AttrList, cmd *cli.Command) error {
	if rows == nil {
		rows = []pattern.Fields{}
	}

	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(rows); err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	return output.SliceDiceSpit(raw, al, output.NewOptions(cmd), cmd.Root().Writer)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// metaFs returns the command's filesystem, the OS filesystem when unset.
func metaFs(m meta.Meta) afero.Fs {
	if m.Fs == nil {
		return afero.NewOsFs()
	}
	return m.Fs
}

// CommandBuilder constructs a cli.Command for the row producing subcommands
// (match, paths) using a consistent pattern. The builder wires metadata, adds
// the tldr flag and the global output flags, and sets up validators.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
	// Template marks commands whose single positional arg is a template.
	Template bool
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta":     cb.Meta,
			"template": cb.Template,
		},
		Flags: append(cb.Flags, append([]cli.Flag{
			newTldrFlag(),
		}, NewGlobalFlags(cb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}

// timed raises the log level so the timing entry of timeit is visible when
// --time is set.
func timed(cmd *cli.Command) {
	if !cmd.Bool("time") {
		return
	}
	if l, ok := log.Log.(*log.Logger); ok && l.Level > log.InfoLevel {
		log.SetLevel(log.InfoLevel)
	}
}
