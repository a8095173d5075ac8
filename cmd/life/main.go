//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"lifecell/internal/app"
	"lifecell/internal/config"
	"lifecell/internal/engine"
	_ "lifecell/internal/patterns"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	win := app.NewConfig()
	win.Bind(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctrl, err := engine.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	if sess, ok := ctrl.PreviousSession(); ok {
		if win.Resume {
			log.Printf("resuming generation %d (%d snapshots)", sess.Generation, sess.Snapshots)
			err = ctrl.Resume()
		} else {
			err = ctrl.Restart(engine.ResetRandom)
		}
		if err != nil {
			log.Printf("session: %v", err)
		}
	}

	game := app.New(ctrl, win)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(fmt.Sprintf("lifecell: %dx%d", cfg.Size, cfg.Size))
	ebiten.SetTPS(win.TPS)
	ebiten.SetWindowSize(w, h)

	runErr := ebiten.RunGame(game)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctrl.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
