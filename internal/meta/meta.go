// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/spf13/afero"

	"github.com/staranto/fglob/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Fs is the filesystem templates are resolved against.
	Fs          afero.Fs
	StartingDir string
}
