package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/dirtally/internal/config"
)

// loadConfig reads the file named by --config, or config.yaml in the
// dirtally home, with defaults placed under that home.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	home, err := config.GetHome()
	if err != nil {
		return nil, fmt.Errorf("failed to locate dirtally home: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfigForHome(configPath, home)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromHome(home)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
