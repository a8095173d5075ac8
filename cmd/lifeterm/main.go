package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"lifecell/internal/config"
	"lifecell/internal/engine"
	_ "lifecell/internal/patterns"
	"lifecell/internal/term"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	resume := flag.Bool("resume", true, "resume the saved session instead of starting fresh")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctrl, err := engine.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()
	if err := term.CheckSize(screen, cfg.Size); err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	if _, ok := ctrl.PreviousSession(); ok {
		if *resume {
			err = ctrl.Resume()
		} else {
			err = ctrl.Restart(engine.ResetRandom)
		}
		if err != nil {
			logger.Warn("session not restored", "err", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := term.New(screen, ctrl).Run(ctx)
	screen.Fini()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctrl.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil && ctx.Err() == nil {
		log.Printf("terminal: %v", runErr)
	}
}
