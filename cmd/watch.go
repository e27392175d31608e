package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramanasai/prodhub/internal/logging"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/schedule"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchOnce bool

// watchCmd is the headless daemon: reminders, the pomodoro countdown, the
// evening digest and the midnight quote refresh.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run reminders and the timer in the background",
	Long: `Checks reminders every minute, finishes pomodoro sessions as they run
out and posts the daily digest. Stop with Ctrl-C.

	prodhub watch
	prodhub watch --once   # evaluate reminders a single time and exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l := logging.GetLogger(logging.Scheduler)
		clock := schedule.SystemClock{Loc: cur.loc}
		sched := schedule.New(cur.state, cur.inbox, cur.desktop, clock, l)

		if watchOnce {
			n := sched.Check(clock.Now())
			cur.countdown.Tick(clock.Now())
			fmt.Printf("%d reminder(s) sent.\n", n)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched.SetInterval(cur.cfg.Scheduler.TickInterval)
		sched.Start(ctx)
		defer sched.Stop()

		cur.countdown.Run(ctx, time.Second, clock.Now)
		defer cur.countdown.Stop()

		c := cron.New(cron.WithLocation(cur.loc))
		if _, err := c.AddFunc("0 0 * * *", func() {
			q := cur.dailyQuote(ctx)
			logging.GetLogger(logging.Quote).Printf("[INFO] Quote of the day: %q (%s)\n", q.Text, q.Author)
		}); err != nil {
			return fmt.Errorf("schedule quote refresh: %w", err)
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()

		if cur.cfg.Digest.Enabled {
			digestDone := schedule.StartDaily(ctx, cur.cfg.Digest, clock, func() { postDigest(clock.Now()) })
			// the store closes after RunE returns; let a running digest finish first
			defer func() { <-digestDone }()
			l.Printf("[INFO] Daily digest at %s\n", schedule.NextAt(clock.Now(), cur.cfg.Digest, cur.loc).Format("Mon Jan 2 15:04"))
		}

		l.Printf("[INFO] Watching reminders (data in %s)\n", cur.cfg.DataDir)
		<-ctx.Done()
		l.Printf("[INFO] Shutting down\n")
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Evaluate reminders once and exit")
}

func postDigest(now time.Time) {
	habits, tasks := cur.state.Snapshot()
	open, left := schedule.Digest(habits, tasks, now)
	cur.inbox.Add(notify.DailyDigest(open, left, now))
	title, msg := notify.FormatDailyDigest(open, left)
	cur.desktop.Send(title, msg)
}
