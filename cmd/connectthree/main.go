package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaminalder/codex-connect-three/internal/app"
	"github.com/jaminalder/codex-connect-three/internal/config"
	"github.com/jaminalder/codex-connect-three/internal/domain"
	"github.com/jaminalder/codex-connect-three/internal/logging"
	"github.com/jaminalder/codex-connect-three/internal/tui"
	"github.com/jaminalder/codex-connect-three/internal/web"
)

type commonFlags struct {
	config   *string
	envFile  *string
	logLevel *string
}

func registerCommon(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:   fs.String("config", "", "path to a YAML configuration file"),
		envFile:  fs.String("env", ".env", "path to .env file (ignored if missing)"),
		logLevel: fs.String("log-level", "", "log level override (debug, info, warn, error)"),
	}
}

func (c commonFlags) load() (config.Config, error) {
	if err := config.LoadDotEnv(*c.envFile); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(*c.config)
	if err != nil {
		return config.Config{}, err
	}
	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	return cfg, nil
}

func main() {
	args := os.Args[1:]
	cmd := "play"
	if len(args) > 0 && (args[0] == "play" || args[0] == "serve") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	default:
		err = runPlay(args)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: connectthree [play] [flags]\n       connectthree serve [flags]\n\nPlay Connect Three in the terminal.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	common := registerCommon(fs)
	p1 := fs.String("p1", "", "player 1 name (skips the prompt when both names are set)")
	p2 := fs.String("p2", "", "player 2 name")
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}

	// stdout belongs to the TUI; logs only go to a file when one is configured.
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "connectthree")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	log, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	name1, name2 := *p1, *p2
	if name1 == "" || name2 == "" {
		name1, name2, err = tui.PromptPlayers(name1, name2)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	g, err := domain.New(name1, name2)
	if err != nil {
		return err
	}
	log.Info("game started", "player1", name1, "player2", name2)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return tui.Run(ctx, g, tui.Options{Logger: log})
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: connectthree serve [flags]\n\nServe the hot-seat web board.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	common := registerCommon(fs)
	addr := fs.String("addr", "", "listen address override")
	_ = fs.Parse(args)

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	svc := app.NewService(app.WithLogger(log))
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: web.NewServer(svc, web.Options{Heartbeat: cfg.Heartbeat, Logger: log}),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
