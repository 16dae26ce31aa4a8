package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtensionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the registered extension dialects",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runExtensions()
		},
	}
}

func runExtensions() error {
	for _, info := range newAppService().Extensions() {
		fmt.Printf("%s\t%s\t%s\t%s\n", info.Prefix, info.Version, info.Namespace, info.DisplayName)
		if info.Description != "" {
			fmt.Printf("\t%s\n", info.Description)
		}
		if info.DocumentationURI != "" {
			fmt.Printf("\tdocs: %s\n", info.DocumentationURI)
		}
	}
	return nil
}
