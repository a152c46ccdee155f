package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/mahjongg/internal/batch"
)

// BatchCmd scores a file of hands
type BatchCmd struct {
	File    string `arg:"" help:"File with one encoded hand per line, - for stdin"`
	Workers int    `short:"w" help:"Number of workers (overrides config)"`
	Out     string `short:"o" type:"path" help:"Write per-hand results to this file (overrides config)"`
}

func (c *BatchCmd) Run(g *Globals) error {
	env, err := g.setup()
	if err != nil {
		return err
	}
	workers := env.config.Batch.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	out := env.config.Batch.Output
	if c.Out != "" {
		out = c.Out
	}

	lines, err := batch.ReadFile(c.File)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.logger.Info("Scoring hands", "hands", len(lines), "workers", workers, "ruleset", env.ruleset.Name)
	report, err := batch.Run(ctx, env.ruleset, lines, batch.Options{
		Workers: workers,
		Logger:  env.logger,
	})
	if err != nil {
		return err
	}

	if out != "" {
		if err := report.WriteFile(out); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	printReport(report)
	return nil
}

func printReport(r *batch.Report) {
	for _, result := range r.Results {
		if result.Err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("line %d: %v", result.Line.Number, result.Err)))
		}
	}

	fmt.Println(headerStyle.Render("Batch results"))
	fmt.Printf("Hands:   %d scored, %d failed, %s\n", r.Scored, r.Failed,
		winStyle.Render(fmt.Sprintf("%d won", r.Won)))
	fmt.Printf("Cache:   %d hits, %d misses\n", r.Hits, r.Misses)
	fmt.Printf("Elapsed: %v (%.0f hands/sec)\n", r.Elapsed, r.Rate())

	s := r.Stats
	if s.Hands == 0 {
		return
	}
	low, high := s.ConfidenceInterval95()
	fmt.Printf("Mean:    %s ± %.1f SE (95%% CI [%.1f, %.1f])\n",
		totalStyle.Render(fmt.Sprintf("%.1f", s.Mean())), s.StdError(), low, high)
	fmt.Printf("Median:  %.0f  P90: %.0f  Max: %d\n", s.Median(), s.Percentile(0.9), s.MaxTotal)
	fmt.Printf("Wins:    %.1f%% (mean %.1f), %d limit hands\n", s.WinRate()*100, s.WinMean(), s.LimitHands)
}
