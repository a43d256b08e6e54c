// Package cli wires the cobra command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:   "fraudengine",
		Short: "Conversational fraud-analysis engine",
		Long:  "fraudengine answers natural-language questions about transaction fraud using a guarded SQL tool and semantic document retrieval.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newIngestCommand(opts))
	return root, nil
}
