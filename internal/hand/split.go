package hand

import (
	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

// patternSplit groups tiles with the rule set's split patterns. The patterns
// end with "single", so every tile lands in some meld.
func patternSplit(rules []rule.SplitRule, tiles tile.List) meld.List {
	groups, rest := rule.Split(rules, tiles)
	var melds meld.List
	for _, g := range groups {
		melds = append(melds, meld.MustNew(g, meld.Concealed))
	}
	for _, t := range rest {
		melds = append(melds, meld.MustNew([]tile.Tile{t}, meld.Concealed))
	}
	return melds
}

// suitVariants enumerates every way to split the tiles of one suit into
// pungs, chows and at most maxPairs pairs. Kongs are never formed here since
// a kong has to be declared. Variants come out in generation order without
// duplicates. If no variant uses all tiles the pattern split is the only
// variant.
func suitVariants(rules []rule.SplitRule, tiles tile.List, maxPairs int) []meld.List {
	sorted := make(tile.List, len(tiles))
	copy(sorted, tiles)
	sorted.Sort()

	var variants []meld.List
	seen := make(map[string]bool)
	var recurse func(found meld.List, rest tile.List, pairs int)
	recurse = func(found meld.List, rest tile.List, pairs int) {
		if len(rest) == 0 {
			variant := found.Clone()
			variant.Sort()
			key := variant.String()
			if !seen[key] {
				seen[key] = true
				variants = append(variants, variant)
			}
			return
		}
		first := rest[0]
		count := rest.Count(first)
		if count >= 3 {
			recurse(append(found.Clone(), same(first, 3)), without(rest, first, first, first), pairs)
		}
		if second, ok := first.Next(1); ok && rest.Contains(second) {
			if third, ok := first.Next(2); ok && rest.Contains(third) {
				chow := meld.MustNew([]tile.Tile{first, second, third}, meld.Concealed)
				recurse(append(found.Clone(), chow), without(rest, first, second, third), pairs)
			}
		}
		if count >= 2 && pairs < maxPairs {
			recurse(append(found.Clone(), same(first, 2)), without(rest, first, first), pairs+1)
		}
	}
	recurse(nil, sorted, 0)

	if len(variants) == 0 {
		variants = append(variants, patternSplit(rules, sorted))
	}
	return variants
}

func same(t tile.Tile, n int) meld.Meld {
	tiles := make([]tile.Tile, n)
	for i := range tiles {
		tiles[i] = t
	}
	return meld.MustNew(tiles, meld.Concealed)
}

// without returns tiles minus one occurrence of each of remove.
func without(tiles tile.List, remove ...tile.Tile) tile.List {
	out := make(tile.List, len(tiles))
	copy(out, tiles)
	for _, r := range remove {
		for i, t := range out {
			if t == r {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}

// splitRest decomposes the rest tiles of p into the melds that give the
// highest total. Every combination of suit variants is evaluated through the
// cache as a complete hand string; ties keep the first combination.
func splitRest(cache *Cache, rs *rule.Ruleset, p *parsed, computed []*rule.Rule, robbed tile.Placed) (meld.List, error) {
	var honours tile.List
	bySuit := make(map[tile.Group]tile.List)
	for _, t := range p.rest {
		if t.IsHonour() {
			honours = append(honours, t)
			continue
		}
		bySuit[t.Group] = append(bySuit[t.Group], t)
	}
	honourMelds := patternSplit(rs.SplitRules, honours)

	// An empty suit has one variant without melds.
	maxPairs := rs.MaxPairs()
	suits := make([][]meld.List, 0, len(tile.Suits))
	for _, g := range tile.Suits {
		if len(bySuit[g]) == 0 {
			suits = append(suits, []meld.List{nil})
			continue
		}
		suits = append(suits, suitVariants(rs.SplitRules, bySuit[g], maxPairs))
	}

	var (
		best      *Content
		bestMelds meld.List
	)
	meta, last := p.meta.String(), p.lastText()
	for _, s := range suits[0] {
		for _, b := range suits[1] {
			for _, c := range suits[2] {
				variant := honourMelds.Clone()
				variant = append(variant, s...)
				variant = append(variant, b...)
				variant = append(variant, c...)

				melds := append(p.fixed.Clone(), variant...)
				melds.Sort()
				candidate := joinParts(melds.String(), p.bonus.String(), meta, last)
				h, err := cache.Get(rs, candidate, computed, robbed)
				if err != nil {
					return nil, err
				}
				if best == nil || h.Total() > best.Total() {
					best = h
					bestMelds = variant
				}
			}
		}
	}
	return bestMelds, nil
}
