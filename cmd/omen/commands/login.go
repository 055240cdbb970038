package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/omenfeed-io/omen/pkg/omenclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		token       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the Omen API",
		Long:  "Verify an API token against an Omen endpoint and save both to the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				apiEndpoint = loadConfig().API
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			if apiEndpoint == "" {
				return ErrAPIEndpointRequired
			}

			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("API token: ")

				tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				token = strings.TrimSpace(string(tokenBytes))

				fmt.Println()
			}

			if token == "" {
				return ErrTokenRequired
			}

			config := &omen.Config{
				BaseURL:       apiEndpoint,
				Token:         token,
				AppName:       "omen-cli",
				SkipTLSVerify: viper.GetBool("skip_ssl_validation"),
			}

			ctx := context.Background()

			client, err := omenclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the token before persisting it.
			status, err := client.GetStatus(ctx)
			if err != nil {
				if omen.IsAuthentication(err) {
					return fmt.Errorf("token rejected by %s: %w", apiEndpoint, err)
				}

				return fmt.Errorf("failed to connect to API: %w", err)
			}

			fileConfig := loadConfig()
			fileConfig.API = config.BaseURL
			fileConfig.Token = token

			if viper.GetBool("skip_ssl_validation") {
				fileConfig.SkipSSLValidation = true
			}

			if err := saveConfig(fileConfig); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Logged in to %s (API version %s)\n", config.BaseURL, status.Version)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVarP(&token, "token", "t", "", "API token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the Omen API",
		Long:  "Remove the saved API token from the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileConfig := loadConfig()
			if fileConfig.Token == "" {
				return ErrNotLoggedIn
			}

			fileConfig.Token = ""
			if err := saveConfig(fileConfig); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
