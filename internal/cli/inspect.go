package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"syndication-kit/internal/app"
)

type inspectOptions struct {
	Document documentFlags
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <document>",
		Short: "Summarize profiles, applications and extensions of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0], opts)
		},
	}
	addDocumentFlags(cmd, &opts.Document)
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, input string, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		DocumentOptions: resolveDocumentOptions(cmd, opts.Document),
		InputPath:       input,
	})
	if err != nil {
		return err
	}

	fmt.Printf("version: %s\n", result.Version)
	if result.Title != "" {
		fmt.Printf("title: %s\n", result.Title)
	}
	if result.Generator != "" {
		fmt.Printf("generator: %s\n", result.Generator)
	}
	fmt.Printf("loaded: %t (token %s)\n", result.Loaded, result.Token)
	fmt.Printf("hash: %016x\n", result.Hash)
	fmt.Println("profiles:")
	for _, profile := range result.Profiles {
		marker := ""
		if profile.Default {
			marker = " (default)"
		}
		fmt.Printf("- %s%s: implicit %d concepts/%d sources, explicit %d concepts/%d sources\n",
			profile.Name, marker,
			profile.ImplicitConcepts, profile.ImplicitSources,
			profile.ExplicitConcepts, profile.ExplicitSources)
	}
	if len(result.Applications) > 0 {
		fmt.Println("applications:")
		for _, name := range result.Applications {
			fmt.Printf("- %s\n", name)
		}
	}
	if len(result.Extensions) > 0 {
		fmt.Println("extensions:")
		for _, usage := range result.Extensions {
			fmt.Printf("- %s (%s): %d entities\n", usage.Prefix, usage.Namespace, usage.Count)
		}
	}
	return nil
}
