package cmd

import (
	"fmt"
	"strings"

	"github.com/ramanasai/prodhub/internal/app"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/pomodoro"
	"github.com/ramanasai/prodhub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	presetWork  int
	presetShort int
	presetLong  int
)

var timerCmd = &cobra.Command{
	Use:     "timer",
	Aliases: []string{"pomodoro"},
	Short:   "Control the pomodoro timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return timerStatusCmd.RunE(cmd, args)
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := cur.now()
		s := cur.countdown.Tick(now)
		printTimer(s, cur.countdown.Preset(now), cur.state.TodaysSessions(now))
		return nil
	},
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := cur.now()
		cur.countdown.Tick(now)
		s := cur.countdown.Start(now)
		fmt.Printf("%s running, %s left. Run `prodhub watch` or the TUI to get notified when it ends.\n",
			s.SessionType.Label(), pomodoro.FormatRemaining(s.TimeLeft))
		return nil
	},
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := cur.now()
		cur.countdown.Tick(now)
		s := cur.countdown.Pause(now)
		fmt.Printf("Paused with %s left.\n", pomodoro.FormatRemaining(s.TimeLeft))
		return nil
	},
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Stop and refill the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := cur.countdown.Reset(cur.now())
		fmt.Printf("%s reset to %s.\n", s.SessionType.Label(), pomodoro.FormatRemaining(s.TimeLeft))
		return nil
	},
}

var timerSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Switch a stopped timer to the next session type",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cur.countdown.CycleSession(cur.now())
		if err != nil {
			return err
		}
		fmt.Printf("Now on %s (%s).\n", s.SessionType.Label(), pomodoro.FormatRemaining(s.TimeLeft))
		return nil
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage timer presets",
}

var presetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		active := cur.countdown.State(cur.now()).ActivePresetID
		for i, p := range cur.state.Presets() {
			mark := " "
			if p.ID == active || (active == "" && i == 0) {
				mark = "*"
			}
			fmt.Printf("%s %-8s %-16s %d/%d/%d min\n", mark, utils.ShortID(p.ID), p.Name,
				p.WorkDuration, p.ShortBreakDuration, p.LongBreakDuration)
		}
		return nil
	},
}

var presetAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a preset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := cur.state.AddPreset(model.Preset{
			Name:               strings.Join(args, " "),
			WorkDuration:       presetWork,
			ShortBreakDuration: presetShort,
			LongBreakDuration:  presetLong,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Preset %s added.\n", utils.ShortID(p.ID))
		return nil
	},
}

var presetUseCmd = &cobra.Command{
	Use:   "use [id]",
	Short: "Count with another preset (timer must be stopped)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := presetID(args[0])
		if err != nil {
			return err
		}
		s, err := cur.countdown.SelectPreset(id, cur.now())
		if err != nil {
			return err
		}
		fmt.Printf("Using %q, %s %s.\n", cur.state.Preset(id).Name, s.SessionType.Label(), pomodoro.FormatRemaining(s.TimeLeft))
		return nil
	},
}

var presetRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cur.state.DeletePreset(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	presetAddCmd.Flags().IntVar(&presetWork, "work", 25, "Work minutes")
	presetAddCmd.Flags().IntVar(&presetShort, "short", 5, "Short break minutes")
	presetAddCmd.Flags().IntVar(&presetLong, "long", 15, "Long break minutes")

	presetCmd.AddCommand(presetListCmd, presetAddCmd, presetUseCmd, presetRmCmd)
	timerCmd.AddCommand(timerStatusCmd, timerStartCmd, timerPauseCmd, timerResetCmd, timerSkipCmd, presetCmd)
}

// presetID expands a unique id prefix the way the other commands do.
func presetID(prefix string) (string, error) {
	var hits []string
	for _, p := range cur.state.Presets() {
		if p.ID == prefix {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, prefix) {
			hits = append(hits, p.ID)
		}
	}
	switch len(hits) {
	case 0:
		return "", fmt.Errorf("preset %q: %w", prefix, app.ErrNotFound)
	case 1:
		return hits[0], nil
	}
	return "", fmt.Errorf("preset %q: %w", prefix, app.ErrAmbiguous)
}

func printTimer(s pomodoro.TimerState, p model.Preset, today int) {
	state := "paused"
	if s.IsRunning {
		state = "running"
	}
	bar := progressBar(pomodoro.Progress(s, p), 24)
	fmt.Printf("%s  %s  %s (%s)\n", strings.ToUpper(s.SessionType.Label()), pomodoro.FormatRemaining(s.TimeLeft), bar, state)
	fmt.Printf("Preset: %s  ·  Sessions today: %d\n", p.Name, today)
}

func progressBar(frac float64, width int) string {
	n := int(frac * float64(width))
	return "[" + strings.Repeat("█", n) + strings.Repeat("░", width-n) + "]"
}
