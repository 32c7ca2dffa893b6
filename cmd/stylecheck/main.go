// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command stylecheck checks JavaScript sources against the house style.
//
// Usage:
//
//	stylecheck check src/
//	stylecheck check --format json src/app.js
//	stylecheck check --fail-on warning --diff changes.patch src/
//	stylecheck watch src/
//	stylecheck rules
//
// Exit codes:
//
//	0  no findings at or above the failure threshold
//	1  findings at or above the failure threshold
//	2  operational failure (unreadable input, bad config)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}
