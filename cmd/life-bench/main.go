package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"lifecell/internal/config"
	"lifecell/internal/core"
	"lifecell/internal/engine"
	_ "lifecell/internal/patterns"
	"lifecell/pkg/sims/life"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type result struct {
	workers int
	elapsed time.Duration
	match   bool
}

func (r result) perGen(gens int) time.Duration { return r.elapsed / time.Duration(gens) }

func main() {
	gens := flag.Int("gens", 200, "generations to step per run")
	workerList := flag.String("workers", fmt.Sprintf("1,2,4,%d", runtime.NumCPU()), "comma-separated worker counts to compare")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form, e.g. size=80 (repeatable)")
	flag.Parse()

	kv := map[string]string{"size": "60", "initial": "random", "settings": "", "history_file": ""}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("bad override %q, want key=value", o)
		}
		kv[parts[0]] = parts[1]
	}
	cfg := config.FromMap(kv)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	counts, err := parseCounts(*workerList, cfg.Size*cfg.Size)
	if err != nil {
		log.Fatal(err)
	}

	var want core.Snapshot
	var results []result
	for k, w := range counts {
		cfg.Workers = w
		r, final, err := run(cfg, *gens)
		if err != nil {
			log.Fatalf("%d workers: %v", w, err)
		}
		if k == 0 {
			want = reference(final.N, cfg, *gens)
		}
		r.match = want.Equal(final)
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].elapsed < results[j].elapsed })
	fmt.Printf("%dx%d grid, %d generations, seed %d\n", cfg.Size, cfg.Size, *gens, cfg.Seed)
	for _, r := range results {
		status := "ok"
		if !r.match {
			status = "MISMATCH"
		}
		fmt.Printf("  workers=%-5d total=%-12s per-gen=%-10s %s\n", r.workers, r.elapsed.Round(time.Microsecond), r.perGen(*gens), status)
	}
}

func parseCounts(list string, cells int) ([]int, error) {
	var out []int
	seen := map[int]bool{}
	for _, f := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad worker count %q", f)
		}
		n = min(n, cells)
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out, nil
}

// run steps a fresh controller gens times and returns the final grid.
func run(cfg config.Config, gens int) (result, core.Snapshot, error) {
	ctrl, err := engine.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return result{}, core.Snapshot{}, err
	}
	ctx := context.Background()
	defer ctrl.Shutdown(ctx)

	start := time.Now()
	for g := 0; g < gens; g++ {
		err := ctrl.Step()
		if errors.Is(err, engine.ErrEmptyGrid) {
			// A dead grid stays dead, so the reference still matches.
			break
		}
		if err != nil {
			return result{}, core.Snapshot{}, fmt.Errorf("generation %d: %w", g, err)
		}
		if err := ctrl.WaitIdle(ctx); err != nil {
			return result{}, core.Snapshot{}, err
		}
	}
	return result{workers: ctrl.Workers(), elapsed: time.Since(start)}, ctrl.Snapshot(), nil
}

// reference replays the same seed on the sequential stepper.
func reference(n int, cfg config.Config, gens int) core.Snapshot {
	cfg.Workers = 1
	ctrl, err := engine.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		log.Fatal(err)
	}
	initial := ctrl.Snapshot()
	_ = ctrl.Shutdown(context.Background())

	g := core.NewGrid(n)
	if err := g.Restore(initial); err != nil {
		log.Fatal(err)
	}
	life.Run(g, gens)
	return g.Snapshot(uint64(gens))
}
