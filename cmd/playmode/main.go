package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cargorun/playmode/oerror"
	"github.com/cargorun/playmode/settings"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// host is what every command needs to run the play mode: a logger and the settings it was configured with.
type host struct {
	log      *logrus.Logger
	settings settings.Settings
	seed     int64
	close    func()
}

var (
	configPath string
	seed       int64
	logLevel   string
	stats      bool
)

func main() {
	root := &cobra.Command{
		Use:           "playmode",
		Short:         "walk the arena, shoot the enemies and save the cargo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "playmode.toml", "settings file, created with defaults if missing")
	root.PersistentFlags().Int64Var(&seed, "seed", 1, "seed of the random source picking enemy targets")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides the log level of the settings file")
	root.PersistentFlags().BoolVar(&stats, "statsview", false, "serve runtime statistics at the address of the settings file")

	root.AddCommand(RunCmd(), SimCmd(), EventsCmd(), ConfigCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newHost loads the settings and sets up logging and diagnostics. The host must be closed once the command is
// done.
func newHost() (*host, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(configPath); err != nil {
			return nil, fmt.Errorf("failed writing default settings: %w", err)
		}
	}
	s, err := settings.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed loading %s: %w", configPath, err)
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: "15:04:05.000"}
	level := s.Diagnostics.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if log.Level, err = logrus.ParseLevel(level); err != nil {
		return nil, oerror.New("unknown log level %q", level)
	}

	h := &host{log: log, settings: s, seed: seed, close: func() {}}
	if s.Diagnostics.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Diagnostics.SentryDSN}); err != nil {
			return nil, fmt.Errorf("failed initializing sentry: %w", err)
		}
		h.close = func() { sentry.Flush(time.Second * 5) }
	}
	if stats {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Diagnostics.StatsviewAddr))
		mgr := statsview.New()
		go mgr.Start()
		log.Infof("serving runtime statistics at http://%s/debug/statsview", s.Diagnostics.StatsviewAddr)
	}
	return h, nil
}

// report logs a panic raised while simulating and forwards it to sentry with the tags passed. It returns the
// panic as an error.
func (h *host) report(v any, tags map[string]string) error {
	h.log.Errorf("simulation panic: %v", v)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
	})
	hub.Recover(oerror.New("%v", v))
	hub.Flush(time.Second * 5)
	return oerror.New("simulation panicked: %v", v)
}
