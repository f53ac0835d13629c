package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [kind]",
	Short: "Sync the vendor feed into the database",
	Long: `Fetches the configured vendor feed and reconciles it into the database.
Without an argument every kind is synced in order (currencies, categories,
offers). With a kind argument only that kind is synced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.log.Sync()

		ctx := context.Background()

		if len(args) == 1 {
			rows, err := a.service.SyncOne(ctx, args[0])
			if err != nil {
				return err
			}
			a.log.Info("Sync finished",
				zap.String("kind", args[0]),
				zap.Int("rows", rows))
			return nil
		}

		results, err := a.service.SyncAll(ctx)
		if err != nil {
			return err
		}
		for kind, rows := range results {
			a.log.Info("Sync finished",
				zap.String("kind", string(kind)),
				zap.Int("rows", rows))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
