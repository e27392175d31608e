package cmd

import (
	"github.com/ramanasai/prodhub/internal/logging"
	"github.com/ramanasai/prodhub/internal/schedule"
	"github.com/ramanasai/prodhub/internal/ui"
	"github.com/spf13/cobra"
)

var tuiNoReminders bool

// tuiCmd launches the Bubble Tea TUI. While it is open it also acts as the
// reminder scheduler, ticking once a second alongside the timer.
var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open TUI",
	Annotations: map[string]string{quietAnnotation: "1"},
	RunE: func(cmd *cobra.Command, args []string) error {
		d := ui.Deps{
			State:     cur.state,
			Inbox:     cur.inbox,
			Countdown: cur.countdown,
			Quote:     cur.dailyQuote(cmd.Context()),
			Location:  cur.loc,
			Log:       logging.GetLogger(logging.UI),
		}
		if !tuiNoReminders {
			d.Scheduler = schedule.New(cur.state, cur.inbox, cur.desktop,
				schedule.SystemClock{Loc: cur.loc}, logging.GetLogger(logging.Scheduler))
		}
		return ui.Run(d)
	},
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiNoReminders, "no-reminders", false, "Leave reminders to a running `prodhub watch`")
}
