package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/omenfeed-io/omen/internal/constants"
	"github.com/omenfeed-io/omen/pkg/omen"
	"github.com/omenfeed-io/omen/pkg/omenclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats supported by the --output flag.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required (use --api or run 'omen login')")
	ErrTokenRequired       = errors.New("API token is required (use --token or run 'omen login')")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrNotLoggedIn         = errors.New("not logged in")
)

// Config represents the persisted CLI configuration at ~/.omen/config.yml.
type Config struct {
	API               string `json:"api,omitempty"       yaml:"api,omitempty"`
	Token             string `json:"token,omitempty"     yaml:"token,omitempty"`
	Output            string `json:"output,omitempty"    yaml:"output,omitempty"`
	SkipSSLValidation bool   `json:"skip_ssl_validation" yaml:"skip_ssl_validation"`
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".omen", "config.yml"), nil
}

func loadConfig() *Config {
	config := &Config{}

	path, err := configFilePath()
	if err != nil {
		return config
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the user's own config flag
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func saveConfig(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// createClient builds an API client from flags, environment, and the saved
// configuration, in that order of precedence.
func createClient(ctx context.Context) (omen.Client, error) {
	fileConfig := loadConfig()

	endpoint := viper.GetString("api")
	if endpoint == "" {
		endpoint = fileConfig.API
	}

	if endpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	token := viper.GetString("token")
	if token == "" {
		token = fileConfig.Token
	}

	config := &omen.Config{
		BaseURL:       endpoint,
		Token:         token,
		AppName:       "omen-cli",
		SkipTLSVerify: viper.GetBool("skip_ssl_validation") || fileConfig.SkipSSLValidation,
		Debug:         viper.GetBool("verbose"),
	}

	client, err := omenclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func outputFormat() string {
	output := viper.GetString("output")
	if output == "" {
		if fileOutput := loadConfig().Output; fileOutput != "" {
			return fileOutput
		}

		return OutputFormatTable
	}

	return output
}

// renderStructured writes v to stdout as JSON or YAML. Table rendering is
// per-command because each resource picks its own columns.
func renderStructured(v any, format string) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAnySlice(header)...)

	for _, row := range rows {
		_ = table.Append(toAnySlice(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

func formatRisk(entity *omen.Entity) string {
	if entity.RiskLevel == "" {
		return fmt.Sprintf("%d", entity.RiskScore)
	}

	return fmt.Sprintf("%d (%s)", entity.RiskScore, entity.RiskLevel)
}
