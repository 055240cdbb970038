package commands

import (
	"fmt"
	"os"

	"github.com/omenfeed-io/omen/internal/constants"
	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/spf13/cobra"
)

// NewFusionCommand creates the fusion command group.
func NewFusionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fusion",
		Short: "Fetch Fusion files",
	}

	cmd.AddCommand(newFusionGetCommand())

	return cmd
}

func newFusionGetCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Fetch a Fusion file",
		Long:  "Fetch a Fusion file by its remote path and print it, or save it with --file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			response, err := client.Fusion().GetFile(ctx, args[0])
			if err != nil {
				return fmt.Errorf("fetching fusion file: %w", err)
			}

			if outputFile != "" {
				body := response.RawResponse().Body
				if err := os.WriteFile(outputFile, body, constants.ConfigFilePerm); err != nil {
					return fmt.Errorf("writing output file: %w", err)
				}

				fmt.Printf("Wrote %d bytes to %s\n", len(body), outputFile)

				return nil
			}

			switch typed := response.(type) {
			case *omen.CSVResponse:
				fmt.Print(typed.Text)
			case *omen.TextResponse:
				fmt.Print(typed.Text)
			default:
				_, _ = os.Stdout.Write(response.RawResponse().Body)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "write the file to this path instead of stdout")

	return cmd
}
