// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package pattern discovers files with path templates. A template mixes
// literal text, the wildcards * and **, and named placeholders ({name},
// {name:d}, {name:f}) whose captured text is returned as typed fields for
// every matching path. When nothing matches, DescribeNoMatch explains which
// part of the template does not exist on disk.
package pattern
