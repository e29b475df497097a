// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/fglob/internal/command"
	"github.com/staranto/fglob/internal/config"
	mylog "github.com/staranto/fglob/internal/log"
	"github.com/staranto/fglob/internal/version"
)

const (
	exitInit = 1
	exitRun  = 2
)

func main() {
	os.Exit(realMain(context.Background(), os.Args))
}

func realMain(ctx context.Context, args []string) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(slices.Clone(args), "--help")
	} else {
		args = mangleArguments(args)
	}

	if slices.ContainsFunc(args, isFlag("version", "v")) {
		fmt.Println(version.Version)
		return 0
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInit
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRun
	}
	return 0
}

// isFlag matches --long or -short.
func isFlag(long, short string) func(string) bool {
	return func(a string) bool {
		return a == "--"+long || a == "-"+short
	}
}

// mangleArguments expands an argument set from the config file. A "@name"
// argument is replaced by the <command>.<name> list; without one, the
// <command>.defaults list is inserted right after the command. Each list
// entry may hold several space separated args. args is not modified.
func mangleArguments(args []string) []string {
	if slices.ContainsFunc(args, isFlag("help", "h")) {
		return []string{args[0], args[1], "--help"}
	}

	out := slices.Clone(args)
	set, at := "defaults", 2
	if i := slices.IndexFunc(out[at:], isSetRef); i >= 0 {
		at += i
		set = out[at][1:]
		out = slices.Delete(out, at, at+1)
	}

	entries, _ := config.GetStringSlice(out[1] + "." + set)
	var expanded []string
	for _, e := range entries {
		expanded = append(expanded, strings.Fields(e)...)
	}
	out = slices.Insert(out, at, expanded...)

	log.WithFields(log.Fields{"set": set, "args": out}).Debug("arguments")
	return out
}

func isSetRef(a string) bool {
	return len(a) > 1 && a[0] == '@'
}
