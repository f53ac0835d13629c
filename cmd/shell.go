package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// shellCmd represents the interactive shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive catalog shell",
	Long:  `Runs an interactive menu for syncing the feed and inspecting the schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		ctx := context.Background()
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Println()
			fmt.Println("1. List entity kinds")
			fmt.Println("2. Show creation DDL")
			fmt.Println("3. Sync all kinds")
			fmt.Println("4. Sync one kind")
			fmt.Println("5. List table columns")
			fmt.Println("6. Check unique column")
			fmt.Println("7. Show schema diff")
			fmt.Println("0. Exit")
			fmt.Print("> ")

			if !scanner.Scan() {
				return scanner.Err()
			}

			switch strings.TrimSpace(scanner.Text()) {
			case "1":
				fmt.Println(strings.Join(a.service.ListKinds(), "\n"))
			case "2":
				kind, ok := prompt(scanner, "Kind: ")
				if !ok {
					return scanner.Err()
				}
				ddl, err := a.service.TableDDL(kind)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				fmt.Println(ddl)
			case "3":
				results, err := a.service.SyncAll(ctx)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				for kind, rows := range results {
					fmt.Printf("%s: %d rows\n", kind, rows)
				}
			case "4":
				kind, ok := prompt(scanner, "Kind: ")
				if !ok {
					return scanner.Err()
				}
				rows, err := a.service.SyncOne(ctx, kind)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				fmt.Printf("%s: %d rows\n", kind, rows)
			case "5":
				table, ok := prompt(scanner, "Table: ")
				if !ok {
					return scanner.Err()
				}
				columns, err := a.service.ListColumns(table)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				for _, col := range columns {
					fmt.Printf("%s\t%s\n", col.Field, col.Type)
				}
			case "6":
				table, ok := prompt(scanner, "Table: ")
				if !ok {
					return scanner.Err()
				}
				column, ok := prompt(scanner, "Column: ")
				if !ok {
					return scanner.Err()
				}
				unique, err := a.service.IsUniqueColumn(table, column)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				fmt.Printf("%s.%s unique: %t\n", table, column, unique)
			case "7":
				kind, ok := prompt(scanner, "Kind: ")
				if !ok {
					return scanner.Err()
				}
				diff, err := a.service.DiffDDL(kind)
				if err != nil {
					fmt.Println("Error:", err)
					continue
				}
				fmt.Println(diff)
			case "0":
				return nil
			default:
				fmt.Println("Unknown choice")
			}
		}
	},
}

func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func init() {
	RootCmd.AddCommand(shellCmd)
}
