package main

import (
	"encoding/json"
	"fmt"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	rows, err := deps.Catalogs.Query(deps.Ctx, c.Statement)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\n", out)
	fmt.Fprintf(deps.Stderr, "%d rows\n", len(rows))
	return nil
}
