package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ramanasai/prodhub/internal/app"
	"github.com/ramanasai/prodhub/internal/config"
	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/logging"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/pomodoro"
	"github.com/ramanasai/prodhub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataDir    string
	logLevel   string
	format     string
	noColor    bool
)

// env is what every command works on, built once per invocation.
type env struct {
	cfg       config.Config
	loc       *time.Location
	store     *db.Store
	state     *app.State
	inbox     *notify.Inbox
	desktop   *notify.Desktop
	countdown *pomodoro.Countdown
}

var cur *env

// quietAnnotation marks commands that own the terminal; their logs go to
// the log file only.
const quietAnnotation = "quiet"

var rootCmd = &cobra.Command{
	Use:           "prodhub",
	Short:         "Tasks, habits and a pomodoro timer with reminders",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["skipEnv"] == "1" {
			return nil
		}
		e, err := setup(cmd.Annotations[quietAnnotation] == "1")
		if err != nil {
			return err
		}
		cur = e
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cur == nil || cur.store == nil {
			return nil
		}
		err := cur.store.Close()
		cur = nil
		return err
	},
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/prodhub/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding prodhub.db and prodhub.log")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "TRACE|DEBUG|INFO|WARN|ERROR")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: default|json|yaml|csv|quiet")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colors")

	rootCmd.AddCommand(watchCmd, tuiCmd, taskCmd, habitCmd, timerCmd, notificationsCmd, quoteCmd, exportCmd, versionCmd)
}

func setup(quiet bool) (*env, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	cfgErr := err
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cfg.DataDir == "" {
		if cfg.DataDir, err = db.DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err = logging.Setup(cfg.LogLevel, cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open log file: %s\n", err.Error())
	}
	if quiet {
		logging.Quiet()
	}
	if cfgErr != nil {
		logging.GetLogger(logging.App).Printf("[WARN] Cannot load config, using defaults: %s\n", cfgErr.Error())
	}

	store, err := db.Open(cfg.DataDir)
	if err != nil {
		logging.GetLogger(logging.Store).Printf("[ERROR] Cannot open database in %s: %s\n", cfg.DataDir, err.Error())
		return nil, err
	}

	e := &env{
		cfg:   cfg,
		loc:   cfg.Location(),
		store: store,
	}
	e.state = app.Load(store, model.Preset{
		ID:                 app.DefaultPresetID,
		Name:               "Classic",
		WorkDuration:       cfg.Pomodoro.Work,
		ShortBreakDuration: cfg.Pomodoro.ShortBreak,
		LongBreakDuration:  cfg.Pomodoro.LongBreak,
	}, logging.GetLogger(logging.Store))
	e.inbox = notify.NewInbox(store, logging.GetLogger(logging.Notify))
	e.desktop = notify.NewDesktop(cfg.Notifications.Desktop, cfg.Notifications.Sound, logging.GetLogger(logging.Notify))
	e.countdown = pomodoro.NewCountdown(store, e.state, pomodoro.Options{
		Inbox:    e.inbox,
		Desktop:  e.desktop,
		Announce: cfg.Notifications.Pomodoro,
		Log:      logging.GetLogger(logging.Timer),
	})
	return e, nil
}

func (e *env) now() time.Time { return time.Now().In(e.loc) }

func (e *env) renderer() (*utils.Renderer, error) {
	rc := utils.DefaultRenderConfig()
	f, err := utils.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	rc.Format = f
	rc.Location = e.loc
	rc.Now = e.now()
	if noColor {
		rc.Color = false
	}
	return utils.NewRenderer(rc), nil
}

func (e *env) print(s string, err error) error {
	if err != nil {
		return err
	}
	fmt.Print(s)
	return nil
}
