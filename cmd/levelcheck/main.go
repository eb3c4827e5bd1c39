package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "levelcheck",
		Short:        "Validate and simulate chromagate levels without a window",
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newSimulateCmd(), newPrefabsCmd())
	return root
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("levelcheck: "+format, args...)
}
