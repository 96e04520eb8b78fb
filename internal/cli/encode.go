package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SW-Perse/artkathon/pkg/dataset"
)

// newEncodeCmd creates the encode command, which converts a raw poem dataset
// into the pre-vectorized form the batch command can load without re-running
// feature extraction.
func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <poems.csv> <vectors.csv>",
		Short: "Encode a raw poem dataset into feature vectors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			prog := newProgress(logger)
			data, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			if len(data.Items) == 0 {
				return fmt.Errorf("dataset %s has no usable rows", args[0])
			}
			prog.done(fmt.Sprintf("Encoded %d poems", len(data.Items)))

			if data.Skipped > 0 {
				printWarning("Skipped %d malformed rows", data.Skipped)
			}

			if err := dataset.SaveVectors(args[1], data.Items); err != nil {
				return err
			}
			printSuccess("Wrote %d vectors", len(data.Items))
			printFile(args[1])
			printNextStep("Render the gallery", fmt.Sprintf("artkathon batch %s", args[1]))
			return nil
		},
	}
}
