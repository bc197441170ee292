// Package cli implements the rewind command-line interface.
// See docs/ARCHITECTURE.md § CLI.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dbPath    string
	tables    []string
	prefix    string
}

var flags rootFlags

// NewRootCmd creates the top-level "rewind" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rewind",
		Short: "Inspect trigger-based undo logs in SQLite databases",
		Long: "Rewind maintains transactional undo/redo history for SQLite databases\n" +
			"through capture triggers and an in-database undo log. This tool inspects\n" +
			"a database's undo state and prints the DDL a manager would install.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .rewind)")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "path to the SQLite database")
	root.PersistentFlags().StringSliceVar(&flags.tables, "tables", nil, "observed table names")
	root.PersistentFlags().StringVar(&flags.prefix, "prefix", "", "scope prefix for the undo log and triggers")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newTriggersCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newStatusCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("REWIND_CONFIG_DIR"); v != "" {
		return v
	}
	return ".rewind"
}

// openDB opens the configured database on a single connection so session
// pragmas apply to every statement.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
