// Package batch scores many encoded hands concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/mahjongg/internal/fileutil"
	"github.com/lox/mahjongg/internal/hand"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/statistics"
	"github.com/lox/mahjongg/internal/tile"
)

// Line is one hand read from input
type Line struct {
	Number int
	Text   string
}

// Result is the outcome of scoring one line
type Result struct {
	Line    Line
	Content *hand.Content
	Err     error
}

// Options configures a batch run
type Options struct {
	Workers int // Defaults to runtime.NumCPU()
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Report summarizes a batch run. Results keep input order.
type Report struct {
	Results []Result
	Scored  int
	Failed  int
	Won     int
	Hits    int
	Misses  int
	Started time.Time
	Elapsed time.Duration
	Stats   *statistics.Statistics
}

// ReadHands reads one encoded hand per line. Blank lines and lines starting
// with # are skipped.
func ReadHands(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Number: number, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hands: %w", err)
	}
	return lines, nil
}

type workerResult struct {
	hits   int
	misses int
}

// Run scores every line under rs. A line that fails to score is recorded in
// its Result and does not stop the run; only cancellation of ctx does.
func Run(ctx context.Context, rs *rule.Ruleset, lines []Line, opts Options) (*Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(lines) {
		workers = max(len(lines), 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	report := &Report{
		Results: make([]Result, len(lines)),
		Started: clock.Now(),
		Stats:   &statistics.Statistics{},
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	results := make(chan workerResult, workers)

	g.Go(func() error {
		defer close(jobs)
		for i := range lines {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			// Each worker owns its cache, caches are not shared
			cache := hand.NewCache(logger)
			scored := 0
			for i := range jobs {
				content, err := cache.Get(rs, lines[i].Text, nil, tile.NoTile)
				report.Results[i] = Result{Line: lines[i], Content: content, Err: err}
				scored++
			}
			stats := cache.Stats()
			logger.Debug("Batch worker finished", "worker", w, "hands", scored,
				"hits", stats.Hits, "misses", stats.Misses)

			select {
			case results <- workerResult{hits: stats.Hits, misses: stats.Misses}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	for result := range results {
		report.Hits += result.hits
		report.Misses += result.misses
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range report.Results {
		if result.Err != nil {
			report.Failed++
			logger.Warn("Failed to score hand", "line", result.Line.Number, "error", result.Err)
			continue
		}
		report.Scored++
		score := result.Content.Score()
		if result.Content.Won() {
			report.Won++
		}
		report.Stats.Add(statistics.HandResult{
			Total:     result.Content.Total(),
			Won:       result.Content.Won(),
			LimitHand: score.Limits > 0,
			Doubles:   score.Doubles,
		})
	}
	report.Elapsed = clock.Since(report.Started)

	logger.Info("Batch complete", "scored", report.Scored, "failed", report.Failed,
		"won", report.Won, "elapsed", report.Elapsed)
	return report, nil
}

// WriteTo writes one tab separated line per result: line number, total,
// won flag and canonical hand, or the error for failed lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, result := range r.Results {
		var line string
		if result.Err != nil {
			line = fmt.Sprintf("%d\terror\t%s\t%v\n", result.Line.Number, result.Line.Text, result.Err)
		} else {
			line = fmt.Sprintf("%d\t%d\t%t\t%s\n", result.Line.Number,
				result.Content.Total(), result.Content.Won(), result.Content.String())
		}
		written, err := bw.WriteString(line)
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteFile atomically writes the report to filename
func (r *Report) WriteFile(filename string) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		_, err := r.WriteTo(w)
		return err
	})
}

// Rate returns hands scored per second
func (r *Report) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Scored+r.Failed) / r.Elapsed.Seconds()
}

// ReadFile reads hands from a file, "-" reads standard input
func ReadFile(filename string) ([]Line, error) {
	if filename == "-" {
		return ReadHands(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadHands(f)
}
