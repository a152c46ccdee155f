package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/mahjongg/internal/hand"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

// ScoreCmd scores hands given on the command line
type ScoreCmd struct {
	Hands    []string `arg:"" help:"Encoded hands, e.g. 'RS1S2S3B4B4B4C5C6C7DrDrDrWeWe Mee LS1'"`
	Patterns bool     `short:"p" help:"Show the winning patterns a hand could claim"`
}

func (c *ScoreCmd) Run(g *Globals) error {
	env, err := g.setup()
	if err != nil {
		return err
	}
	cache := hand.NewCache(env.logger)

	failed := 0
	for _, encoded := range c.Hands {
		h, err := cache.Get(env.ruleset, encoded, nil, tile.NoTile)
		if err != nil {
			failed++
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("%s: %v", encoded, err)))
			continue
		}
		printHand(os.Stdout, h, c.Patterns)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hands failed to score", failed, len(c.Hands))
	}
	return nil
}

func printHand(w io.Writer, h *hand.Content, patterns bool) {
	fmt.Fprintln(w, handStyle.Render(h.String()))
	for _, line := range h.Explain() {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if patterns {
		for _, r := range h.MaybeMahjongg() {
			fmt.Fprintf(w, "  %s %s\n", categoryStyle.Render("may claim"), ruleLine(r))
		}
	}

	status := "not won"
	if h.Won() {
		status = winStyle.Render("won")
	}
	fmt.Fprintf(w, "  %s %s (%s, %s)\n\n", headerStyle.Render("Total:"),
		totalStyle.Render(fmt.Sprint(h.Total())), h.Score(), status)
}

func ruleLine(r *rule.Rule) string {
	line := fmt.Sprintf("%-45s %s", r.Name, r.Score)
	if r.Absolute {
		line += " (absolute)"
	}
	return line
}
