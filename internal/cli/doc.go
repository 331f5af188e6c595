// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the vlist binaries: error
// categories that map to exit codes, logger construction, and JSON
// output.
//
// Binaries follow one shape:
//
//	func main() {
//	    if err := run(); err != nil {
//	        os.Exit(cli.Exit(err))
//	    }
//	}
//
// where run returns a [*ToolError] (or any error) and [Exit] prints
// it with its hint and picks the exit code.
package cli
