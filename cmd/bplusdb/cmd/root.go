// Package cmd implements bplusdb's command-line interface, grounded on
// ssargent-freyjadb's cmd/freyja/cmd layout: a cobra root command with a
// persistent flag naming the resource to operate on, opening it lazily
// in PersistentPreRunE and injecting it through cmd.Context() rather
// than a package-level global (SPEC_FULL.md §6.1, resolving spec.md
// §9's "inject explicitly" open question).
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"bplusdb/database"
)

type dbKeyType struct{}

var dbKey = dbKeyType{}

var dbName string

var rootCmd = &cobra.Command{
	Use:   "bplusdb",
	Short: "bplusdb - an in-memory, snapshot-persisted B+ tree database",
	Long: `bplusdb is a small relational-flavored database engine backed by
B+ tree indexes: tables are created with an explicit schema and primary
key, rows are validated on insert, and a whole database can be saved to
and loaded from a JSON snapshot.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dbName == "" {
			return fmt.Errorf("--db is required")
		}
		logger := log.New(os.Stderr, "", log.LstdFlags)
		db, ok := database.Load(dbName, logger)
		if !ok {
			db = database.New(dbName, logger)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), dbKey, db))
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on
// error. It is called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbName, "db", "d", "", "database name (required)")
}

func dbFromContext(cmd *cobra.Command) *database.Database {
	db, _ := cmd.Context().Value(dbKey).(*database.Database)
	return db
}
