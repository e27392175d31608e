package cmd

import (
	"fmt"
	"strings"

	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	taskPriority string
	taskDeadline string
	taskDesc     string
	taskRemind   string
	taskAll      bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Examples:
	prodhub task add Write report
	prodhub task add Pay rent -d "fri" -p high
	prodhub task add Standup notes --remind 09:30
	prodhub task add Stretch --remind auto`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := cur.now()
		t := model.Task{
			Title:       strings.Join(args, " "),
			Description: taskDesc,
		}
		p, err := parsePriority(taskPriority)
		if err != nil {
			return err
		}
		t.Priority = p
		if taskDeadline != "" {
			if t.Deadline, err = utils.ParseDeadline(taskDeadline, now); err != nil {
				return fmt.Errorf("invalid --deadline %q: %w", taskDeadline, err)
			}
		}
		if taskRemind != "" {
			if t.Reminder, err = parseReminder(taskRemind); err != nil {
				return err
			}
		}
		t = cur.state.AddTask(t, now)
		fmt.Printf("Task %s added.\n", utils.ShortID(t.ID))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks (open ones unless --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, tasks := cur.state.Snapshot()
		if !taskAll {
			open := tasks[:0]
			for _, t := range tasks {
				if !t.Completed {
					open = append(open, t)
				}
			}
			tasks = open
		}
		r, err := cur.renderer()
		if err != nil {
			return err
		}
		return cur.print(r.RenderTasks(tasks))
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cur.state.ToggleTask(args[0], cur.now())
		if err != nil {
			return err
		}
		if t.Completed {
			fmt.Printf("Completed %q.\n", t.Title)
		} else {
			fmt.Printf("Reopened %q.\n", t.Title)
		}
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cur.state.DeleteTask(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

var taskDueCmd = &cobra.Command{
	Use:   "due [id] [when]",
	Short: "Set or clear (none) a task deadline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := ""
		if w := strings.ToLower(args[1]); w != "none" && w != "off" {
			var err error
			if day, err = utils.ParseDeadline(args[1], cur.now()); err != nil {
				return err
			}
		}
		t, err := cur.state.UpdateTask(args[0], func(t *model.Task) { t.Deadline = day })
		if err != nil {
			return err
		}
		if day == "" {
			fmt.Printf("Cleared deadline of %q.\n", t.Title)
		} else {
			fmt.Printf("%q is due %s.\n", t.Title, day)
		}
		return nil
	},
}

var taskRemindCmd = &cobra.Command{
	Use:   "remind [id] [auto|HH:MM|off]",
	Short: "Configure a task reminder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseReminder(args[1])
		if err != nil {
			return err
		}
		t, err := cur.state.UpdateTask(args[0], func(t *model.Task) {
			r.LastSent = t.LastSent
			t.Reminder = r
		})
		if err != nil {
			return err
		}
		fmt.Printf("%q: %s.\n", t.Title, describeReminder(t.Reminder))
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "medium", "low|medium|high")
	taskAddCmd.Flags().StringVarP(&taskDeadline, "deadline", "d", "", "Due date: today, tomorrow, fri, in 3 days, YYYY-MM-DD")
	taskAddCmd.Flags().StringVar(&taskDesc, "desc", "", "Longer description")
	taskAddCmd.Flags().StringVarP(&taskRemind, "remind", "r", "", "auto (every 4h) or a daily HH:MM")
	taskListCmd.Flags().BoolVarP(&taskAll, "all", "a", false, "Include completed tasks")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd, taskDueCmd, taskRemindCmd)
}

func parsePriority(s string) (model.Priority, error) {
	switch p := model.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return p, nil
	case "":
		return model.PriorityMedium, nil
	}
	return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
}

// parseReminder reads "auto", "off" or a clock time.
func parseReminder(s string) (model.Reminder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "":
		return model.Reminder{}, nil
	case "auto", "automatic", "4h":
		return model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}, nil
	}
	hhmm, err := utils.ParseClockInput(s)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("reminder must be auto, off or a time: %w", err)
	}
	return model.Reminder{Kind: model.ReminderManual, Time: hhmm, Enabled: true}, nil
}

func describeReminder(r model.Reminder) string {
	if s := utils.ReminderSummary(r); s != "" {
		return "reminder " + s
	}
	return "reminder off"
}

