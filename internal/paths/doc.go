// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package paths resolves user supplied names to existing files. A name may be
// a pattern template, a plain glob, or a literal path.
package paths
