package main

import (
	"fmt"

	"github.com/fwojciec/partscat/fs"
)

// Run executes the flatten command.
func (c *FlattenCmd) Run(deps *Dependencies) error {
	n, err := fs.FlattenDir(c.DataDir)
	if err != nil {
		if n == 0 {
			return err
		}
		fmt.Fprintf(deps.Stderr, "%s\n", err)
	}
	fmt.Fprintf(deps.Stdout, "Flattened %d catalog files in %s\n", n, c.DataDir)
	return nil
}
