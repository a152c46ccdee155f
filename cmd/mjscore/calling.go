package main

import (
	"fmt"

	"github.com/lox/mahjongg/internal/hand"
	"github.com/lox/mahjongg/internal/tile"
)

// CallingCmd lists the winning tiles of a calling hand
type CallingCmd struct {
	Hand   string `arg:"" help:"Encoded calling hand, e.g. 'RS1S2S3B4B4B4C5C6C7DrDrDrWe mee'"`
	Wanted int    `short:"n" default:"0" help:"Stop after this many winning tiles (0 for all)"`
}

func (c *CallingCmd) Run(g *Globals) error {
	env, err := g.setup()
	if err != nil {
		return err
	}
	cache := hand.NewCache(env.logger)

	h, err := cache.Get(env.ruleset, c.Hand, nil, tile.NoTile)
	if err != nil {
		return err
	}
	winners, err := h.CallingHands(cache, c.Wanted)
	if err != nil {
		return err
	}

	fmt.Println(handStyle.Render(h.String()))
	if len(winners) == 0 {
		fmt.Println("  not calling")
		return nil
	}
	for _, w := range winners {
		fmt.Printf("  %s %s  %s\n", winStyle.Render(w.LastTile().String()),
			totalStyle.Render(fmt.Sprintf("%5d", w.Total())), w.String())
	}

	stats := cache.Stats()
	env.logger.Debug("Calling hands evaluated", "hits", stats.Hits, "misses", stats.Misses)
	return nil
}
