package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

// configFile is the structure written to config.yaml by init.
type configFile struct {
	DBPath string   `yaml:"db_path"`
	Tables []string `yaml:"tables,omitempty"`
	Prefix string   `yaml:"prefix,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a rewind configuration file",
		Long:  "Create the configuration directory and a config.yaml seeded from the global flags.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	if flags.dbPath == "" {
		return types.ErrDBPathEmpty
	}

	configDir := resolveConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileName+"."+configFileType)
	if err := writeConfigIfMissing(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeConfigIfMissing creates config.yaml from the global flags if the file
// does not exist. An existing file is left untouched (idempotent).
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		DBPath: flags.dbPath,
		Tables: flags.tables,
		Prefix: flags.prefix,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
