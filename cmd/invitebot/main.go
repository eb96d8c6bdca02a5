package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"invitebot/internal/channels/matrix"
	"invitebot/internal/config"
	"invitebot/internal/fsutil"
	"invitebot/internal/invite"
)

// Version of the build injected at build time.
var buildString = "unknown"

func main() {
	os.Exit(run())
}

func run() int {
	f := flag.NewFlagSet("invitebot", flag.ContinueOnError)
	f.Usage = func() {
		fmt.Println(f.FlagUsages())
		os.Exit(0)
	}
	f.StringSlice("config", []string{"config.yml"},
		"Path to one or more YAML config files to load in order.")
	f.Bool("new-config", false, "generate a sample config file and exit")
	f.Bool("debug", false, "enable debug logging")
	f.Bool("version", false, "show build version")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := newLogger(f)

	if ok, _ := f.GetBool("version"); ok {
		fmt.Println(buildString)
		return 0
	}
	if ok, _ := f.GetBool("new-config"); ok {
		if err := fsutil.WriteFileAtomic("config.yml", config.Sample(), 0o600); err != nil {
			logger.Error().Err(err).Msg("could not write sample config")
			return 1
		}
		logger.Info().Msg("generated config.yml, edit it and run the bot")
		return 0
	}

	cFiles, _ := f.GetStringSlice("config")
	cfg, err := config.Load(cFiles, f)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}
	store := config.NewStore(cfg)

	client, err := matrix.NewClient(cfg.Homeserver, logger)
	if err != nil {
		logger.Error().Err(err).Msg("could not set up matrix client")
		return 1
	}
	oracle := matrix.NewOracle(client)
	dispatcher := invite.NewDispatcher(store, oracle, logger)
	reporter := invite.NewReporter(store, oracle, logger)
	bot := matrix.NewBot(client, store, matrix.Handlers{
		Invite: dispatcher.RequestInvite,
		Report: reporter.GenerateReport,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncErr := make(chan error, 1)
	go func() { syncErr <- bot.Run(ctx) }()

	reloads := watchConfig(cFiles, logger)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case sig := <-sigs:
			if sig == syscall.SIGHUP {
				reloadConfig(store, cFiles, f, logger)
				continue
			}
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			cancel()
			<-syncErr
			return 0
		case <-reloads:
			reloadConfig(store, cFiles, f, logger)
		case err := <-syncErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("matrix sync stopped")
				return 1
			}
			return 0
		}
	}
}

// reloadConfig re-validates the config files and swaps the live snapshot.
// A rejected document leaves the previous configuration active.
func reloadConfig(store *config.Store, paths []string, f *flag.FlagSet, logger zerolog.Logger) {
	next, err := config.Load(paths, f)
	if err != nil {
		logger.Error().Err(err).Msg("config reload rejected, keeping previous configuration")
		return
	}
	if next.Homeserver != store.Current().Homeserver {
		logger.Warn().Msg("homeserver settings changed, restart required for them to apply")
	}
	store.Replace(next)
	logger.Info().
		Int("invite_groups", len(next.InviteGroups)).
		Int("admin_users", len(next.AdminUsers)).
		Msg("configuration reloaded")
}

func watchConfig(files []string, logger zerolog.Logger) <-chan struct{} {
	out := make(chan struct{})
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("config file watcher unavailable, reload with SIGHUP")
		return out
	}
	for _, file := range files {
		if err := watcher.Add(file); err != nil {
			logger.Warn().Err(err).Str("file", file).Msg("could not watch config file")
		}
	}
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				logger.Info().Str("file", ev.Name).Msg("config file changed on disk")
				out <- struct{}{}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()
	return out
}

func newLogger(f *flag.FlagSet) zerolog.Logger {
	level := zerolog.InfoLevel
	if ok, _ := f.GetBool("debug"); ok {
		level = zerolog.DebugLevel
	}
	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
