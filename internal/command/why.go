// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/fglob/internal/meta"
	"github.com/staranto/fglob/internal/pattern"
)

// WhyCommandAction explains a template. When it matches, the number of
// matches is printed. Otherwise the no-match diagnostic names the first part
// of the template that does not exist, with a suggestion when a sibling is
// close. --detail shows what the template compiled to.
func WhyCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for %v", cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd, "why") {
		return nil
	}

	template := cmd.Args().First()
	if template == "" {
		return fmt.Errorf("why: a template is required")
	}

	fsOpt := pattern.WithFs(metaFs(GetMeta(cmd)))

	m, err := pattern.Compile(template, fsOpt)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if cmd.Bool("detail") {
		fmt.Fprintf(w, "root:  %s\n", m.Root())
		fmt.Fprintf(w, "expr:  %s\n", m.Expr())
		for _, f := range m.Template().Fields() {
			fmt.Fprintf(w, "field: %s (%s)\n", f.Name, f.Kind)
		}
	}

	var n int64
	for _, err := range m.All() {
		if err != nil {
			return err
		}
		n++
	}

	if n > 0 {
		noun := "entries"
		if n == 1 {
			noun = "entry"
		}
		fmt.Fprintf(w, "%s matches %s %s\n", template, humanize.Comma(n), noun)
		return nil
	}

	fmt.Fprintln(w, pattern.DescribeNoMatch(template, fsOpt))
	return nil
}

// WhyCommandBuilder constructs the cli.Command for "why".
func WhyCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "why",
		Usage:     "explain why a template matches nothing",
		UsageText: `fglob why <template>`,
		Metadata: map[string]any{
			"meta":     meta,
			"template": true,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "detail",
				Aliases:     []string{"d"},
				Usage:       "also print the walk root, expression and fields",
				HideDefault: true,
			},
			newTldrFlag(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: WhyCommandAction,
	}
}
