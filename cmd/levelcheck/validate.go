package main

import (
	"fmt"
	"io"

	"github.com/milk9111/chromagate/levels"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate [level...]",
		Short: "Check levels for authoring mistakes (all levels when none are named)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func runValidate(out io.Writer, names []string, strict bool) error {
	known := levels.List()
	if len(names) == 0 {
		names = known
	}

	failed := 0
	for _, name := range names {
		name = levels.NormalizeName(name)
		lvl, err := levels.LoadLevel(name)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", name, err)
			failed++
			continue
		}

		issues := levels.Validate(lvl, known)
		for _, issue := range issues {
			fmt.Fprintf(out, "%s: %s\n", name, issue)
		}
		if levels.HasErrors(issues) || (strict && len(issues) > 0) {
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: ok (%d records)\n", name, len(lvl.Entities))
	}

	if failed > 0 {
		return errorf("%d of %d levels failed", failed, len(names))
	}
	return nil
}
