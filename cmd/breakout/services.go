package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

const logFile = "breakout.log"

// serviceOptions selects what openServices wires up.
type serviceOptions struct {
	// LogToFile sends logs to ~/.breakout/breakout.log instead of stderr,
	// which the alt screen hides.
	LogToFile  bool
	Sound      bool
	Difficulty string
}

// appDir returns ~/.breakout, creating it if needed.
func appDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".breakout")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return dir, nil
}

// newLogger builds the process logger at the --log-level level.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if toFile {
		dir, dirErr := appDir()
		if dirErr != nil {
			return nil, nil, dirErr
		}
		f, openErr := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           level,
	})
	return logger, closer, nil
}

// terminalSize returns the size of stdout, or the default screen size when
// it is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}

// runSeed returns --seed, or a time based seed when it is zero.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// loadGameConfig loads the game config and applies a difficulty preset.
func loadGameConfig(difficulty string) (config.BreakoutConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// openServices wires config, storage, preferences and audio. The returned
// cleanup closes everything that was opened.
func openServices(opts serviceOptions) (tui.Services, func(), error) {
	logger, logCloser, err := newLogger(opts.LogToFile)
	if err != nil {
		return tui.Services{}, nil, err
	}

	cfg, err := loadGameConfig(opts.Difficulty)
	if err != nil {
		logCloser.Close()
		return tui.Services{}, nil, err
	}

	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = terminalSize()
	rt.TickRate = flagFPS
	rt.Seed = runSeed()

	svc := tui.Services{
		Config:  cfg,
		Runtime: rt,
		Prefs:   settings.NewStore(settings.OpenGdata(logger), logger),
		Logger:  logger,
	}

	// Open run history; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history unavailable", "err", err)
	} else {
		svc.Runs = store
	}

	if opts.Sound {
		player := audio.NewPlayer(svc.Prefs.LoadAudio().SFX, logger)
		if initErr := player.Init(); initErr != nil {
			logger.Warn("sound disabled", "err", initErr)
		}
		svc.Audio = player
	}

	cleanup := func() {
		svc.Audio.Close()
		if svc.Runs != nil {
			svc.Runs.Close()
		}
		logCloser.Close()
	}
	return svc, cleanup, nil
}
