package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rewind/internal/sqlite"
	"github.com/mesh-intelligence/rewind/pkg/types"
)

func newTriggersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "triggers",
		Short: "Print the DDL a manager would install for the configured scope",
		Long: "Print the undo log table and capture trigger DDL for the observed tables.\n" +
			"The database is opened to introspect columns but its schema is not changed.",
		RunE: runTriggers,
	}
}

func runTriggers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Tables) == 0 {
		return types.ErrNoTables
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ddl, err := sqlite.TriggerDDL(db, cfg.Tables, cfg.Prefix)
	if err != nil {
		return err
	}
	for _, stmt := range ddl {
		fmt.Fprintln(cmd.OutOrStdout(), stmt)
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
