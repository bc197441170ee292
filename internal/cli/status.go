package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rewind/internal/sqlite"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the undo log state for the configured scope",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := sqlite.ReadStatus(db, cfg.Prefix)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !status.Exists {
		fmt.Fprintf(out, "log table %s: absent (scope inactive)\n", status.Table)
		return nil
	}
	fmt.Fprintf(out, "log table %s: %d entries, max seq %d\n", status.Table, status.Entries, status.MaxSeq)
	return nil
}
