// Config loading for the rewind CLI.
package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDBPath = "db_path"
	cfgKeyTables = "tables"
	cfgKeyPrefix = "prefix"
)

// loadConfig resolves the effective Config from config.yaml and flags.
// Flags win over file values. A missing config.yaml is not an error; the
// merged result must still pass Config.Validate.
func loadConfig() (types.Config, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(resolveConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		DBPath: v.GetString(cfgKeyDBPath),
		Tables: v.GetStringSlice(cfgKeyTables),
		Prefix: v.GetString(cfgKeyPrefix),
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if len(flags.tables) > 0 {
		cfg.Tables = flags.tables
	}
	if flags.prefix != "" {
		cfg.Prefix = flags.prefix
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
