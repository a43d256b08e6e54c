package cli

import (
	"github.com/spf13/cobra"

	"github.com/hfahrudin/fraud-chatbot/internal/app"
)

func newIngestCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Populate the missing stores from the data directory",
		Long:  "Builds the fraud_data table from data-directory CSVs and the knowledge index from PDFs. Existing stores are left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := app.BuildContainer(ctx, opts.Verbose)
			if err != nil {
				return err
			}
			defer container.Close()
			return container.EnsureIngested(ctx)
		},
	}
}
