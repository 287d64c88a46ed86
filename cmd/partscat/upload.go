package main

import (
	"fmt"

	"github.com/fwojciec/partscat/fs"
)

// Run executes the upload command.
func (c *UploadCmd) Run(deps *Dependencies) error {
	summary, err := fs.UploadDir(deps.Ctx, c.DataDir, deps.Catalogs)
	if err != nil {
		return err
	}

	if summary.Total == 0 {
		fmt.Fprintf(deps.Stdout, "No catalog files found in %s\n", c.DataDir)
		return nil
	}

	for _, file := range summary.Files {
		if file.Status == "failed" {
			fmt.Fprintf(deps.Stderr, "%s: %s\n", file.File, file.Error)
		}
	}
	fmt.Fprintf(deps.Stdout, "Uploaded %d/%d catalogs (%d failed)\n",
		summary.Uploaded, summary.Total, summary.Failed)
	return nil
}
