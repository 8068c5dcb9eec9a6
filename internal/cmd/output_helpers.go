package cmd

import (
	"context"

	"github.com/salmonumbrella/ptree/internal/output"
)

func structuredOutputRequested() bool {
	return output.IsStructured(GetOutputFormat())
}

// printOutput prints data in the selected --output format, applying the
// query and result options carried by ctx.
func printOutput(ctx context.Context, data interface{}) error {
	if ctx == nil {
		ctx = currentContext()
	}
	printer := output.NewPrinter(stdoutFromContext(ctx), GetOutputFormat())
	return printer.Print(ctx, data)
}

func printStructured(ctx context.Context, data interface{}) error {
	return printOutput(ctx, data)
}

func currentContext() context.Context {
	if rootCmd != nil && rootCmd.Context() != nil {
		return rootCmd.Context()
	}
	return context.Background()
}
