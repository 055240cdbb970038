package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show API status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			status, err := client.GetStatus(ctx)
			if err != nil {
				return fmt.Errorf("getting status: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(status, output)
			default:
				rows := [][]string{
					{"Version", status.Version},
					{"Healthy", strconv.FormatBool(status.Healthy)},
				}
				if status.Message != "" {
					rows = append(rows, []string{"Message", status.Message})
				}

				return renderTable([]string{"Property", "Value"}, rows)
			}
		},
	}
}

// NewUsageCommand creates the usage command.
func NewUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show quota usage for the current token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			usage, err := client.GetUsage(ctx)
			if err != nil {
				return fmt.Errorf("getting usage: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(usage, output)
			default:
				return renderTable(
					[]string{"Property", "Value"},
					[][]string{
						{"Daily Limit", strconv.Itoa(usage.DailyLimit)},
						{"Used", strconv.Itoa(usage.Used)},
						{"Remaining", strconv.Itoa(usage.Remaining)},
					})
			}
		},
	}
}
