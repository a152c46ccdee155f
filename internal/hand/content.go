// Package hand evaluates encoded mah jongg hands.
//
// An encoded hand is a space separated list of tokens:
//
//	S1S2S3 dbDbDbdb fe RB2B3B4WeWe Mesw LB2B2B3B4
//
// Meld tokens start with a group letter, R holds tiles still to be split,
// the M/m/x token carries winds, win state, last tile source and
// declarations, and L names the last tile and optionally its meld.
//
// Hands are always evaluated through a Cache, which owns every Content.
package hand

import (
	"strings"

	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

// Content is an evaluated hand. It is immutable once the cache returns it.
type Content struct {
	ruleset  *rule.Ruleset
	encoded  string
	computed []*rule.Rule
	robbed   tile.Placed

	meta     MetaToken
	won      bool
	lastTile tile.Placed
	lastMeld *meld.Meld
	// lastText is the L token as given, empty without one.
	lastText string

	melds    meld.List
	hidden   meld.List
	declared meld.List
	bonus    meld.List

	usedRules []rule.UsedRule
	score     rule.Score
}

func newContent(cache *Cache, rs *rule.Ruleset, encoded string, computed []*rule.Rule, robbed tile.Placed) (*Content, error) {
	p, err := parse(encoded)
	if err != nil {
		return nil, err
	}

	c := &Content{
		ruleset:  rs,
		encoded:  encoded,
		computed: computed,
		robbed:   robbed,
		meta:     p.meta,
		won:      p.meta.Won,
		lastTile: tile.NoTile,
		lastText: p.lastText(),
		bonus:    p.bonus,
	}

	c.melds = p.fixed.Clone()
	if len(p.rest) > 0 {
		variant, err := splitRest(cache, rs, p, computed, robbed)
		if err != nil {
			return nil, err
		}
		c.melds = append(c.melds, variant...)
	}
	c.melds.Sort()
	c.categorize()

	if err := c.setLast(p); err != nil {
		return nil, err
	}

	wasWon := c.won
	c.applyRules()
	if c.won != wasWon {
		// A hand that turned out not to be a win may be too long for the
		// meld rules already applied, so start over.
		c.applyRules()
	}
	return c, nil
}

func (c *Content) categorize() {
	c.hidden, c.declared = nil, nil
	for _, m := range c.melds {
		if m.IsDeclared() {
			c.declared = append(c.declared, m)
		} else {
			c.hidden = append(c.hidden, m)
		}
	}
}

func (c *Content) setLast(p *parsed) error {
	if p.last == nil || !p.last.Tile.IsKnown() {
		return nil
	}
	last := p.last.Tile
	if !c.holds(last) {
		return malformed(c.encoded, "last tile %s is not in the hand", last)
	}
	all := c.Tiles()
	if c.meta.Source == tile.RobbedKong && all.Count(last.Tile) != 1 {
		return malformed(c.encoded, "robbed kong tile %s held more than once", last)
	}
	c.lastTile = last

	m, err := p.lastMeld(c.encoded)
	if err != nil {
		return err
	}
	if m == nil {
		m = c.inferLastMeld()
	}
	c.lastMeld = m
	return nil
}

// holds reports whether the hand's encoding contains t with the same
// visibility: upper case tiles are concealed, lower case tiles exposed.
func (c *Content) holds(t tile.Placed) bool {
	code := t.String()
	for _, m := range append(c.melds.Clone(), c.bonus...) {
		s := m.String()
		for i := 0; i+2 <= len(s); i += 2 {
			if s[i:i+2] == code {
				return true
			}
		}
	}
	return false
}

// inferLastMeld picks the meld the last tile most likely completed. A pair
// scores best, then a chow since the alternative pung stays concealed.
func (c *Content) inferLastMeld() *meld.Meld {
	check := c.declared
	if c.lastTile.Concealed {
		check = c.hidden
	}
	var candidates meld.List
	for _, m := range check {
		if !m.IsKong() && m.Contains(c.lastTile.Tile) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		c.lastTile = tile.NoTile
		return nil
	}
	pick := candidates[0]
	for _, want := range []func(meld.Meld) bool{meld.Meld.IsPair, meld.Meld.IsChow} {
		found := false
		for _, m := range candidates {
			if want(m) {
				pick, found = m, true
				break
			}
		}
		if found {
			break
		}
	}
	return &pick
}

// String returns the canonical encoding: sorted melds, bonus melds,
// metadata and last tile.
func (c *Content) String() string {
	return joinParts(c.melds.String(), c.bonus.String(), c.meta.String(), c.lastText)
}

// Encoded returns the string the hand was evaluated from.
func (c *Content) Encoded() string { return c.encoded }

// Tiles returns every tile of the hand including bonus tiles.
func (c *Content) Tiles() tile.List {
	tiles := c.melds.Tiles()
	return append(tiles, c.bonus.Tiles()...)
}

// Melds returns all melds except bonus melds.
func (c *Content) Melds() meld.List { return c.melds.Clone() }

// HiddenMelds returns concealed melds other than kongs.
func (c *Content) HiddenMelds() meld.List { return c.hidden.Clone() }

// DeclaredMelds returns exposed melds and kongs.
func (c *Content) DeclaredMelds() meld.List { return c.declared.Clone() }

// BonusMelds returns one meld per flower or season.
func (c *Content) BonusMelds() meld.List { return c.bonus.Clone() }

// InvalidMelds returns the single tiles the split could not group. They are
// also part of HiddenMelds.
func (c *Content) InvalidMelds() meld.List {
	var invalid meld.List
	for _, m := range c.hidden {
		if m.IsSingle() {
			invalid = append(invalid, m)
		}
	}
	return invalid
}

// UsedRules returns the rules that matched, in matching order.
func (c *Content) UsedRules() []rule.UsedRule {
	out := make([]rule.UsedRule, len(c.usedRules))
	copy(out, c.usedRules)
	return out
}

func (c *Content) Score() rule.Score       { return c.score }
func (c *Content) Won() bool               { return c.won }
func (c *Content) MayWin() bool            { return c.meta.MayWin }
func (c *Content) OwnWind() tile.Wind      { return c.meta.OwnWind }
func (c *Content) RoundWind() tile.Wind    { return c.meta.RoundWind }
func (c *Content) LastSource() tile.Source { return c.meta.Source }
func (c *Content) LastTile() tile.Placed   { return c.lastTile }
func (c *Content) Ruleset() *rule.Ruleset  { return c.ruleset }

// LastMeld returns the meld completed by the last tile.
func (c *Content) LastMeld() (meld.Meld, bool) {
	if c.lastMeld == nil {
		return meld.Meld{}, false
	}
	return *c.lastMeld, true
}

// HasDeclaration reports whether the player made declaration d, e.g. 'a'
// for an original call.
func (c *Content) HasDeclaration(d byte) bool {
	return strings.IndexByte(c.meta.Declarations, d) >= 0
}

// Total is the score capped by the rule set's limit.
func (c *Content) Total() int {
	return c.score.Total(c.ruleset.Limit)
}

// LenOffset is the number of tiles beyond a calling hand, counting a kong as
// three tiles: 0 for a calling hand, 1 for a complete one.
func (c *Content) LenOffset() int {
	return c.melds.TileCount() - c.melds.Count(meld.Meld.IsKong) - 13
}

// Explain lists the used rules: those with points, then those with only
// doubles, then those without either.
func (c *Content) Explain() []string {
	var points, doubles, rest []string
	debug := false
	for _, u := range c.usedRules {
		s := u.Rule.Score
		switch {
		case s.Points != 0:
			points = append(points, u.Explain())
		case s.Doubles != 0:
			doubles = append(doubles, u.Explain())
		default:
			rest = append(rest, u.Explain())
		}
		debug = debug || u.Rule.Debug
	}
	result := append(points, doubles...)
	result = append(result, rest...)
	if debug {
		result = append(result, c.String())
	}
	return result
}

// DoublesEstimate sums the doubles of meld and hand rules, ignoring what
// winning would add.
func (c *Content) DoublesEstimate() int {
	doubles := 0
	for _, u := range c.usedRules {
		if u.Rule.Category == rule.MeldRule || u.Rule.Category == rule.HandRule {
			doubles += u.Rule.Score.Doubles
		}
	}
	return doubles
}

func joinParts(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
