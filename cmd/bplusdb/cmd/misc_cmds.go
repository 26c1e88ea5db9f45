package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bplusdb/sqlload"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the database snapshot to disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dbFromContext(cmd).Save()
	},
}

func init() { rootCmd.AddCommand(saveCmd) }

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Report the tables currently loaded from the database snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range dbFromContext(cmd).ListTables() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(loadCmd) }

var loadSQLCmd = &cobra.Command{
	Use:   "load-sql <file>",
	Short: "Bulk-load INSERT statements from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("load-sql: %w", err)
		}

		db := dbFromContext(cmd)
		applied, err := sqlload.Load(db, string(data))
		fmt.Printf("applied %d statement(s)\n", applied)
		if err != nil {
			return err
		}
		return db.Save()
	},
}

func init() { rootCmd.AddCommand(loadSQLCmd) }
