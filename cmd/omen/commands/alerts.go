package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/spf13/cobra"
)

// NewAlertCommand creates the alert command group.
func NewAlertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alert",
		Aliases: []string{"alerts"},
		Short:   "Inspect triggered alerts and alerting rules",
	}

	cmd.AddCommand(newAlertRulesCommand())
	cmd.AddCommand(newAlertGetCommand())
	cmd.AddCommand(newAlertSearchCommand())

	return cmd
}

func newAlertRulesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List alerting rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			list, err := client.Alerts().ListRules(ctx, omen.NewQueryParams().WithLimit(limit))
			if err != nil {
				return fmt.Errorf("listing alert rules: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(list, output)
			default:
				rows := make([][]string, 0, len(list.Data))
				for _, rule := range list.Data {
					rows = append(rows, []string{rule.ID, rule.Title, strconv.FormatBool(rule.Enabled)})
				}

				return renderTable([]string{"ID", "Title", "Enabled"}, rows)
			}
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "maximum number of results")

	return cmd
}

func newAlertGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <alert-id>",
		Short: "Show a single alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			alert, err := client.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("getting alert: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(alert, output)
			default:
				rows := [][]string{
					{"ID", alert.ID},
					{"Title", alert.Title},
					{"Status", alert.Status},
					{"Triggered", alert.Triggered.Format(time.RFC3339)},
					{"Rule", alert.Rule.Title},
				}
				if alert.URL != "" {
					rows = append(rows, []string{"URL", alert.URL})
				}

				return renderTable([]string{"Property", "Value"}, rows)
			}
		},
	}
}

func newAlertSearchCommand() *cobra.Command {
	var (
		ruleID string
		status string
		limit  int
		from   int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search triggered alerts",
		Long:  "Search triggered alerts, optionally filtered by rule and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			params := omen.NewQueryParams().WithLimit(limit)
			if from > 0 {
				params = params.WithFrom(from)
			}
			if ruleID != "" {
				params = params.WithFilter("rule_id", ruleID)
			}
			if status != "" {
				params = params.WithFilter("status", status)
			}

			list, err := client.Alerts().Search(ctx, params)
			if err != nil {
				return fmt.Errorf("searching alerts: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(list, output)
			default:
				rows := make([][]string, 0, len(list.Data))
				for _, alert := range list.Data {
					rows = append(rows, []string{
						alert.ID,
						alert.Title,
						alert.Status,
						alert.Triggered.Format(time.RFC3339),
					})
				}

				if err := renderTable([]string{"ID", "Title", "Status", "Triggered"}, rows); err != nil {
					return err
				}

				fmt.Printf("\nShowing %d of %d alerts\n", list.Counts.Returned, list.Counts.Total)

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&ruleID, "rule", "", "filter by alerting rule ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by alert status")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "maximum number of results")
	cmd.Flags().IntVar(&from, "from", 0, "offset into the result set")

	return cmd
}
