// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/fglob/internal/config"
)

func TestMangleArguments(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "sets.yaml"))
	require.NoError(t, err)
	t.Setenv(config.EnvVar, path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted after command",
			args: []string{"fglob", "match", "runs/{run:d}"},
			want: []string{"fglob", "match", "--output", "json", "runs/{run:d}"},
		},
		{
			name: "named set replaces marker",
			args: []string{"fglob", "match", "runs/{run:d}", "@wide", "-a", "run"},
			want: []string{"fglob", "match", "runs/{run:d}", "--titles", "--stat", "--sort", "-size", "-a", "run"},
		},
		{
			name: "unknown set is dropped",
			args: []string{"fglob", "match", "@nope", "x"},
			want: []string{"fglob", "match", "x"},
		},
		{
			name: "command without sets",
			args: []string{"fglob", "why", "x"},
			want: []string{"fglob", "why", "x"},
		},
		{
			name: "help wins",
			args: []string{"fglob", "match", "x", "-h"},
			want: []string{"fglob", "match", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.args...)
			assert.Equal(t, tt.want, mangleArguments(in))
			assert.Equal(t, tt.args, in)
		})
	}
}

func TestRealMain(t *testing.T) {
	t.Setenv(config.EnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	ctx := context.Background()

	assert.Equal(t, 0, realMain(ctx, []string{"fglob", "--version"}))
	assert.Equal(t, 0, realMain(ctx, []string{"fglob", "why", "-v"}))
	assert.Equal(t, exitRun, realMain(ctx, []string{"fglob", "match"}))
	assert.Equal(t, exitRun, realMain(ctx, []string{"fglob", "paths"}))
}
