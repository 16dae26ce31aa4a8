package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"syndication-kit/internal/app"
)

type normalizeOptions struct {
	Document        documentFlags
	Output          string
	Minimize        bool
	LocalNamespaces bool
}

func newNormalizeCommand() *cobra.Command {
	opts := normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize <document>",
		Short: "Rewrite a document in canonical element order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd.Context(), cmd, args[0], opts)
		},
	}
	addDocumentFlags(cmd, &opts.Document)
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output document path")
	cmd.Flags().BoolVar(&opts.Minimize, "minimize", false, "Write without indentation")
	cmd.Flags().BoolVar(&opts.LocalNamespaces, "local-namespaces", false, "Declare extension namespaces where they are used instead of on the root")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("minimize", cmd.Flags().Lookup("minimize"))
	return cmd
}

func runNormalize(ctx context.Context, cmd *cobra.Command, input string, opts normalizeOptions) error {
	service := newAppService()
	result, err := service.Normalize(ctx, app.NormalizeRequest{
		DocumentOptions: resolveDocumentOptions(cmd, opts.Document),
		InputPath:       input,
		OutputPath:      resolveString(cmd, opts.Output, "output", "output"),
		Minimize:        resolveBool(cmd, opts.Minimize, "minimize", "minimize"),
		LocalNamespaces: opts.LocalNamespaces,
	})
	if err != nil {
		return err
	}
	fmt.Printf("written: %s (hash %016x)\n", result.OutputPath, result.Hash)
	return nil
}
