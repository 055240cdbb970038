package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the Omen CLI configuration stored in $HOME/.omen/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func maskToken(token string) string {
	if token == "" {
		return NotAvailable
	}

	return "***"
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch output := outputFormat(); output {
			case OutputFormatJSON, OutputFormatYAML:
				masked := *config
				masked.Token = maskToken(masked.Token)

				return renderStructured(masked, output)
			default:
				return renderTable(
					[]string{"Key", "Value"},
					[][]string{
						{"api", config.API},
						{"token", maskToken(config.Token)},
						{"output", config.Output},
						{"skip_ssl_validation", strconv.FormatBool(config.SkipSSLValidation)},
					})
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			switch key {
			case "api":
				config.API = value
			case "token":
				config.Token = value
			case "output":
				config.Output = value
			case "skip_ssl_validation":
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", key, err)
				}

				config.SkipSSLValidation = parsed
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			switch key {
			case "api":
				config.API = ""
			case "token":
				config.Token = ""
			case "output":
				config.Output = ""
			case "skip_ssl_validation":
				config.SkipSSLValidation = false
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}
