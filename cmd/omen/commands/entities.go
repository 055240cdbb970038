package commands

import (
	"fmt"
	"strings"

	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/spf13/cobra"
)

// NewEntityCommand creates the entity command group.
func NewEntityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entity",
		Aliases: []string{"entities"},
		Short:   "Look up and search threat-intelligence entities",
	}

	cmd.AddCommand(newEntityLookupCommand())
	cmd.AddCommand(newEntitySearchCommand())

	return cmd
}

func newEntityLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <kind> <id>",
		Short: "Look up a single entity",
		Long:  "Look up a single entity by kind (ip, domain, hash, ...) and identifier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			entity, err := client.Entities().Lookup(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("looking up entity: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(entity, output)
			default:
				rows := [][]string{
					{"ID", entity.ID},
					{"Name", entity.Name},
					{"Type", entity.Type},
					{"Risk", formatRisk(entity)},
				}
				if entity.Description != "" {
					rows = append(rows, []string{"Description", entity.Description})
				}
				if len(entity.Evidence) > 0 {
					rows = append(rows, []string{"Evidence", strings.Join(entity.Evidence, ", ")})
				}
				if entity.FirstSeen != nil {
					rows = append(rows, []string{"First Seen", entity.FirstSeen.Format("2006-01-02")})
				}
				if entity.LastSeen != nil {
					rows = append(rows, []string{"Last Seen", entity.LastSeen.Format("2006-01-02")})
				}

				return renderTable([]string{"Property", "Value"}, rows)
			}
		},
	}

	return cmd
}

//nolint:funlen
func newEntitySearchCommand() *cobra.Command {
	var (
		kind   string
		limit  int
		from   int
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entities",
		Long:  "Search entities by name, optionally restricted to a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			params := omen.NewQueryParams().
				WithLimit(limit).
				WithFilter("name", args[0])
			if from > 0 {
				params = params.WithFrom(from)
			}
			if kind != "" {
				params = params.WithFilter("type", kind)
			}
			if len(fields) > 0 {
				params = params.WithFields(fields...)
			}

			list, err := client.Entities().Search(ctx, params)
			if err != nil {
				return fmt.Errorf("searching entities: %w", err)
			}

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				return renderStructured(list, output)
			default:
				rows := make([][]string, 0, len(list.Data))
				for i := range list.Data {
					entity := &list.Data[i]
					rows = append(rows, []string{entity.ID, entity.Name, entity.Type, formatRisk(entity)})
				}

				if err := renderTable([]string{"ID", "Name", "Type", "Risk"}, rows); err != nil {
					return err
				}

				fmt.Printf("\nShowing %d of %d entities\n", list.Counts.Returned, list.Counts.Total)

				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "restrict results to an entity kind")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "maximum number of results")
	cmd.Flags().IntVar(&from, "from", 0, "offset into the result set")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "restrict returned fields")

	return cmd
}
