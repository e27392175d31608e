package cmd

import (
	"fmt"
	"strings"

	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	habitFrequency string
	habitRemind    bool
	habitDay       string
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Track daily habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h := model.Habit{
			Name:      strings.Join(args, " "),
			Frequency: habitFrequency,
		}
		if habitRemind {
			h.Reminder = model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}
		}
		h = cur.state.AddHabit(h, cur.now())
		fmt.Printf("Habit %s added.\n", utils.ShortID(h.ID))
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with today's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, _ := cur.state.Snapshot()
		r, err := cur.renderer()
		if err != nil {
			return err
		}
		return cur.print(r.RenderHabits(habits))
	},
}

var habitCheckCmd = &cobra.Command{
	Use:   "check [id]",
	Short: "Toggle a habit for today (or --day)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := cur.now()
		day := model.DateKey(now)
		if habitDay != "" {
			d, err := utils.ParseFlexibleDate(habitDay, now)
			if err != nil {
				return err
			}
			day = model.DateKey(d)
		}
		h, err := cur.state.ToggleHabit(args[0], day, now)
		if err != nil {
			return err
		}
		if h.CompletedOn(day) {
			fmt.Printf("%q done for %s. Streak: %d (best %d).\n", h.Name, day, h.Streak, h.BestStreak)
		} else {
			fmt.Printf("%q unmarked for %s. Streak: %d.\n", h.Name, day, h.Streak)
		}
		return nil
	},
}

var habitRmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a habit",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cur.state.DeleteHabit(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var habitRemindCmd = &cobra.Command{
	Use:   "remind [id] [auto|off]",
	Short: "Turn the 4-hourly habit reminder on or off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseReminder(args[1])
		if err != nil {
			return err
		}
		if r.Kind == model.ReminderManual {
			return fmt.Errorf("habits only support auto or off reminders")
		}
		h, err := cur.state.UpdateHabit(args[0], func(h *model.Habit) {
			r.LastSent = h.LastSent
			h.Reminder = r
		})
		if err != nil {
			return err
		}
		fmt.Printf("%q: %s.\n", h.Name, describeReminder(h.Reminder))
		return nil
	},
}

func init() {
	habitAddCmd.Flags().StringVar(&habitFrequency, "frequency", "daily", "How often the habit repeats")
	habitAddCmd.Flags().BoolVarP(&habitRemind, "remind", "r", false, "Remind every 4 hours")
	habitCheckCmd.Flags().StringVar(&habitDay, "day", "", "Day to toggle (default today)")

	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitCheckCmd, habitRmCmd, habitRemindCmd)
}
