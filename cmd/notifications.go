package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	notifUnread  bool
	notifReadAll bool
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox", "n"},
	Short:   "Show the in-app notification history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return notificationsListCmd.RunE(cmd, args)
	},
}

var notificationsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := cur.inbox.List()
		if notifUnread {
			unread := items[:0]
			for _, n := range items {
				if !n.Read {
					unread = append(unread, n)
				}
			}
			items = unread
		}
		r, err := cur.renderer()
		if err != nil {
			return err
		}
		return cur.print(r.RenderNotifications(items))
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark one notification (or --all) as read",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if notifReadAll {
			cur.inbox.MarkAllRead()
			fmt.Println("All notifications marked read.")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("give a notification id or --all")
		}
		if !cur.inbox.MarkRead(args[0]) {
			return fmt.Errorf("no notification %q", args[0])
		}
		fmt.Println("Marked read.")
		return nil
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		cur.inbox.Clear()
		fmt.Println("Cleared.")
		return nil
	},
}

func init() {
	notificationsCmd.PersistentFlags().BoolVarP(&notifUnread, "unread", "u", false, "Only unread notifications")
	notificationsReadCmd.Flags().BoolVarP(&notifReadAll, "all", "a", false, "Mark everything read")

	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsClearCmd)
}
