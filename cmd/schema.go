package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

// schemaCmd groups the schema inspection commands.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect catalog tables and their expected shape",
}

var schemaKindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List entity kinds in sync order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		fmt.Println(strings.Join(a.service.ListKinds(), "\n"))
		return nil
	},
}

var schemaDDLCmd = &cobra.Command{
	Use:   "ddl <kind>",
	Short: "Render a kind's creation DDL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		ddl, err := a.service.TableDDL(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ddl)
		return nil
	},
}

var schemaDiffCmd = &cobra.Command{
	Use:   "diff <kind>",
	Short: "Show statements needed to reconcile a kind's live table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		diff, err := a.service.DiffDDL(args[0])
		if err != nil {
			return err
		}
		fmt.Println(diff)
		return nil
	},
}

var schemaColumnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "List a table's live columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		columns, err := a.service.ListColumns(args[0])
		if err != nil {
			return err
		}
		for _, col := range columns {
			if col.Type != "" {
				fmt.Printf("%s\t%s\n", col.Field, col.Type)
				continue
			}
			fmt.Println(col.Field)
		}
		return nil
	},
}

var schemaUniqueCmd = &cobra.Command{
	Use:   "unique <table> <column>",
	Short: "Check whether a column belongs to a unique index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		unique, err := a.service.IsUniqueColumn(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s.%s unique: %t\n", args[0], args[1], unique)
		return nil
	},
}

func init() {
	schemaCmd.AddCommand(schemaKindsCmd)
	schemaCmd.AddCommand(schemaDDLCmd)
	schemaCmd.AddCommand(schemaDiffCmd)
	schemaCmd.AddCommand(schemaColumnsCmd)
	schemaCmd.AddCommand(schemaUniqueCmd)
	RootCmd.AddCommand(schemaCmd)
}
