// Copyright (C) 2025 Idiomatic JS Project (maintainers@idiomaticjs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/idiomaticjs/stylecheck/rules"
)

// runRules prints the registered rules as a table.
func runRules(cmd *cobra.Command, args []string) {
	registry := rules.DefaultRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tDEFAULT\tDESCRIPTION")
	for _, rule := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			rule.ID(),
			rule.DefaultSeverity(),
			rule.Description(),
		)
	}
	w.Flush()
}
