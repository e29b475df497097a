// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fglob/internal/config"
	"github.com/staranto/fglob/internal/meta"
)

// InitApp builds the fglob command tree over the OS filesystem.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the fglob
	// subcommand and also represents the namespace key to be used when retrieving
	// config values. arg[1] could be -h/--help, so ignore it if it appears to be
	// a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	cfg, _ := config.Load()
	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Fs:          afero.NewOsFs(),
		StartingDir: sd,
	}

	return NewApp(m), nil
}

// NewApp returns the root command with every subcommand wired to m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "fglob",
		Usage: "find files with path templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "fglob version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		MatchCommandBuilder(m),
		PathsCommandBuilder(m),
		WhyCommandBuilder(m),
		CompletionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
