package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"syndication-kit/internal/app"
)

type roundTripOptions struct {
	Document documentFlags
	Print    bool
}

func newRoundTripCommand() *cobra.Command {
	opts := roundTripOptions{}
	cmd := &cobra.Command{
		Use:   "roundtrip <document>",
		Short: "Check that a document survives save and load unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundTrip(cmd.Context(), cmd, args[0], opts)
		},
	}
	addDocumentFlags(cmd, &opts.Document)
	cmd.Flags().BoolVar(&opts.Print, "print", false, "Print the saved document")
	return cmd
}

func runRoundTrip(ctx context.Context, cmd *cobra.Command, input string, opts roundTripOptions) error {
	service := newAppService()
	result, err := service.RoundTrip(ctx, app.RoundTripRequest{
		DocumentOptions: resolveDocumentOptions(cmd, opts.Document),
		InputPath:       input,
	})
	if err != nil {
		return err
	}
	if opts.Print {
		fmt.Println(result.Output)
	}
	if !result.Equal {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("document changed across save and load: hash %016x became %016x", result.OriginalHash, result.ReloadedHash))
	}
	fmt.Printf("round trip ok: hash %016x\n", result.OriginalHash)
	return nil
}
