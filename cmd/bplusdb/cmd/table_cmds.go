package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createTableCmd = &cobra.Command{
	Use:   "create-table <name>",
	Short: "Create a table with an explicit schema and primary key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaSpec, _ := cmd.Flags().GetString("schema")
		pk, _ := cmd.Flags().GetString("pk")

		schema, err := parseSchema(schemaSpec)
		if err != nil {
			return err
		}

		db := dbFromContext(cmd)
		if err := db.CreateTable(args[0], schema, pk); err != nil {
			return err
		}
		return db.Save()
	},
}

func init() {
	createTableCmd.Flags().String("schema", "", `column spec, e.g. "id:int,name:str"`)
	createTableCmd.Flags().String("pk", "", "primary key column name")
	_ = createTableCmd.MarkFlagRequired("schema")
	_ = createTableCmd.MarkFlagRequired("pk")
	rootCmd.AddCommand(createTableCmd)
}

var insertCmd = &cobra.Command{
	Use:   "insert <table>",
	Short: "Insert a row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowSpec, _ := cmd.Flags().GetString("row")

		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}

		row, err := parseRow(tb, rowSpec)
		if err != nil {
			return err
		}
		if err := tb.Insert(row); err != nil {
			return err
		}
		return db.Save()
	},
}

func init() {
	insertCmd.Flags().String("row", "", `row spec, e.g. "id=1,name=alice"`)
	_ = insertCmd.MarkFlagRequired("row")
	rootCmd.AddCommand(insertCmd)
}

var selectCmd = &cobra.Command{
	Use:   "select <table> <pk>",
	Short: "Select a single row by primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}

		pk, err := parsePK(tb, args[1])
		if err != nil {
			return err
		}
		row, ok := tb.Select(pk)
		if !ok {
			return fmt.Errorf("no row with primary key %s", args[1])
		}
		fmt.Println(formatRow(row))
		return nil
	},
}

func init() { rootCmd.AddCommand(selectCmd) }

var selectRangeCmd = &cobra.Command{
	Use:   "select-range <table> <lo> <hi>",
	Short: "Select every row whose primary key is in [lo, hi]",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}

		lo, err := parsePK(tb, args[1])
		if err != nil {
			return err
		}
		hi, err := parsePK(tb, args[2])
		if err != nil {
			return err
		}
		for _, row := range tb.SelectRange(lo, hi) {
			fmt.Println(formatRow(row))
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(selectRangeCmd) }

var selectAllCmd = &cobra.Command{
	Use:   "select-all <table>",
	Short: "Select every row, in primary key order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}
		for _, row := range tb.SelectAll() {
			fmt.Println(formatRow(row))
		}
		return nil
	},
}

func init() { rootCmd.AddCommand(selectAllCmd) }

var updateCmd = &cobra.Command{
	Use:   "update <table> <pk>",
	Short: "Apply a patch to the row with the given primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patchSpec, _ := cmd.Flags().GetString("set")

		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}

		pk, err := parsePK(tb, args[1])
		if err != nil {
			return err
		}
		patch, err := parseRow(tb, patchSpec)
		if err != nil {
			return err
		}
		if err := tb.Update(pk, patch); err != nil {
			return err
		}
		return db.Save()
	},
}

func init() {
	updateCmd.Flags().String("set", "", `fields to change, e.g. "name=bob"`)
	_ = updateCmd.MarkFlagRequired("set")
	rootCmd.AddCommand(updateCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <pk>",
	Short: "Delete the row with the given primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db := dbFromContext(cmd)
		tb, ok := db.GetTable(args[0])
		if !ok {
			return fmt.Errorf("table %q does not exist", args[0])
		}

		pk, err := parsePK(tb, args[1])
		if err != nil {
			return err
		}
		if !tb.Delete(pk) {
			return fmt.Errorf("no row with primary key %s", args[1])
		}
		return db.Save()
	},
}

func init() { rootCmd.AddCommand(deleteCmd) }
