package cmd

import (
	"fmt"

	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Notification maintenance commands",
}

var markDetachedReadCmd = &cobra.Command{
	Use:   "mark-detached-read",
	Short: "Mark notifications without an application as read",
	Long: `Mark every unread notification that is not linked to an application as read.
Such notifications come from older data and can no longer be resolved
to a request, so they would otherwise stay unread forever.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			if sqlDB, _ := db.DB(); sqlDB != nil {
				sqlDB.Close()
			}
		}()

		n, err := repository.NewNotificationRepository(db).MarkDetachedRead(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notification(s) as read\n", n)
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(markDetachedReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}
