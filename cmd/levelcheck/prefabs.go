package main

import (
	"fmt"
	"io"

	"github.com/milk9111/chromagate/prefabs"
	"github.com/spf13/cobra"
)

func newPrefabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefabs",
		Short: "List prefab specs, note disk overrides and check each one parses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefabs(cmd.OutOrStdout())
		},
	}
}

func runPrefabs(out io.Writer) error {
	failed := 0
	for _, name := range prefabs.List() {
		source := "embedded"
		if mod, ok := prefabs.Overridden(name); ok {
			source = "disk " + mod.Format("2006-01-02 15:04:05")
		}
		if _, err := prefabs.LoadSpec[map[string]any](name); err != nil {
			fmt.Fprintf(out, "%s (%s): %v\n", name, source, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s (%s): ok\n", name, source)
	}
	if failed > 0 {
		return errorf("%d prefabs failed to parse", failed)
	}
	return nil
}
