package hand

import (
	"strings"

	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/tile"
)

// AddTile adds t to an encoded hand as its last tile. Concealed meld tokens
// are merged into the rest so the hand gets split again, and a hand that may
// win is marked as won.
func AddTile(encoded string, t tile.Tile) string {
	code := t.Code(true)
	rest := "R" + code
	var parts []string
	meta := ""
	for _, part := range strings.Fields(encoded) {
		switch c := part[0]; {
		case c == 'S' || c == 'B' || c == 'C' || c == 'D' || c == 'W':
			rest += part
		case c == 'R':
			rest += part[1:]
		case c == 'm' || c == 'M':
			meta = "M" + part[1:]
		case c == 'L':
		default:
			parts = append(parts, part)
		}
	}
	parts = append(parts, rest, "L"+code)
	if meta != "" {
		parts = append(parts, meta)
	}
	return strings.Join(parts, " ")
}

// Sub returns the hand without tiles. A tile is taken from the concealed
// tiles if possible, otherwise from a declared meld whose other tiles become
// concealed. Declared melds shorter than three tiles become concealed too.
// Removing the last tile makes the hand not won and forgets a robbed kong.
func (c *Content) Sub(cache *Cache, tiles ...tile.Tile) (*Content, error) {
	hidden := c.hidden.Tiles()
	declared := c.declared.Clone()
	if last, ok := c.LastMeld(); ok {
		sortLastFirst(declared, last)
	}

	for _, t := range tiles {
		if i := indexOfTile(hidden, t); i >= 0 {
			hidden = append(hidden[:i], hidden[i+1:]...)
			continue
		}
		for i, m := range declared {
			if remaining, ok := m.Without(t); ok {
				hidden = append(hidden, remaining...)
				declared = append(declared[:i:i], declared[i+1:]...)
				break
			}
		}
	}
	kept := declared[:0:0]
	for _, m := range declared {
		if m.Len() < 3 {
			hidden = append(hidden, m.Tiles()...)
			continue
		}
		kept = append(kept, m)
	}

	meta := c.meta
	lastText := c.lastText
	removedLast := false
	for _, t := range tiles {
		if c.lastTile.IsKnown() && t == c.lastTile.Tile {
			removedLast = true
		}
	}
	if removedLast {
		meta.Won = false
		if meta.Source == tile.RobbedKong {
			meta.Source = tile.SourceUnknown
			meta.Declarations = ""
		}
		lastText = ""
	}

	var rest string
	if len(hidden) > 0 {
		rest = "R" + hidden.Code(true)
	}
	encoded := joinParts(rest, meld.List(kept).String(), c.bonus.String(), meta.String(), lastText)
	return cache.Get(c.ruleset, encoded, c.computed, tile.NoTile)
}

// CallingHands returns up to wanted hands, each completed by one more tile,
// that would win. A wanted of 0 or less returns all of them.
func (c *Content) CallingHands(cache *Cache, wanted int) ([]*Content, error) {
	if !c.meta.MayWin || c.LenOffset() != 0 {
		return nil, nil
	}
	held := c.Tiles()
	base := c.baseString()
	var result []*Content
	for _, t := range tile.Playable() {
		if held.Count(t) >= 4 {
			continue
		}
		h, err := cache.Get(c.ruleset, AddTile(base, t), nil, tile.NoTile)
		if err != nil {
			return nil, err
		}
		if len(h.MaybeMahjongg()) > 0 {
			result = append(result, h)
			if wanted > 0 && len(result) == wanted {
				break
			}
		}
	}
	return result, nil
}

// baseString encodes the hand with concealed tiles as rest.
func (c *Content) baseString() string {
	var rest string
	if hidden := c.hidden.Tiles(); len(hidden) > 0 {
		rest = "R" + hidden.Code(true)
	}
	return joinParts(rest, c.declared.String(), c.bonus.String(), c.meta.String())
}

func sortLastFirst(melds meld.List, last meld.Meld) {
	for i, m := range melds {
		if m.Equal(last) {
			copy(melds[1:i+1], melds[:i])
			melds[0] = m
			return
		}
	}
}

func indexOfTile(tiles tile.List, t tile.Tile) int {
	for i, x := range tiles {
		if x == t {
			return i
		}
	}
	return -1
}
