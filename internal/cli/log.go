package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rewind/internal/sqlite"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Dump the undo log entries for the configured scope",
		RunE:  runLog,
	}
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := sqlite.ReadLog(db, cfg.Prefix)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", e.Seq, e.SQL)
	}
	return nil
}
