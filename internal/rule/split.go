package rule

import (
	"fmt"

	"github.com/lox/mahjongg/internal/tile"
)

// SplitRule extracts one group of tiles from a sorted tile list. Split rules
// are the pattern fallback used when no complete decomposition exists.
type SplitRule struct {
	Name string
	find func(tiles tile.List) []int
}

var splitRules = map[string]SplitRule{
	"pung":   {Name: "pung", find: findIdentical(3)},
	"pair":   {Name: "pair", find: findIdentical(2)},
	"chow":   {Name: "chow", find: findChow},
	"single": {Name: "single", find: findSingle},
}

// DefaultSplitOrder is used when a rule set does not name its split rules.
var DefaultSplitOrder = []string{"pung", "chow", "pair", "single"}

// SplitRuleByName looks up a split rule.
func SplitRuleByName(name string) (SplitRule, error) {
	r, ok := splitRules[name]
	if !ok {
		return SplitRule{}, fmt.Errorf("unknown split rule %q", name)
	}
	return r, nil
}

// Split applies each rule repeatedly, in order, until it no longer matches.
// Tiles no rule consumes are returned as rest.
func Split(rules []SplitRule, tiles tile.List) (groups []tile.List, rest tile.List) {
	rest = make(tile.List, len(tiles))
	copy(rest, tiles)
	rest.Sort()
	for _, r := range rules {
		for len(rest) > 0 {
			idx := r.find(rest)
			if idx == nil {
				break
			}
			group := make(tile.List, 0, len(idx))
			for _, i := range idx {
				group = append(group, rest[i])
			}
			groups = append(groups, group)
			rest = removeIndexes(rest, idx)
		}
	}
	return groups, rest
}

func findIdentical(n int) func(tile.List) []int {
	return func(tiles tile.List) []int {
		for i := 0; i+n <= len(tiles); i++ {
			same := true
			for j := 1; j < n; j++ {
				if tiles[i+j] != tiles[i] {
					same = false
					break
				}
			}
			if same {
				idx := make([]int, n)
				for j := range idx {
					idx[j] = i + j
				}
				return idx
			}
		}
		return nil
	}
}

func findChow(tiles tile.List) []int {
	for i, t := range tiles {
		second, ok := t.Next(1)
		if !ok {
			continue
		}
		third, _ := t.Next(2)
		j := indexOf(tiles, second, i+1)
		if j < 0 {
			continue
		}
		k := indexOf(tiles, third, j+1)
		if k < 0 {
			continue
		}
		return []int{i, j, k}
	}
	return nil
}

func findSingle(tiles tile.List) []int {
	if len(tiles) == 0 {
		return nil
	}
	return []int{0}
}

func indexOf(tiles tile.List, t tile.Tile, from int) int {
	for i := from; i < len(tiles); i++ {
		if tiles[i] == t {
			return i
		}
	}
	return -1
}

func removeIndexes(tiles tile.List, idx []int) tile.List {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := make(tile.List, 0, len(tiles)-len(idx))
	for i, t := range tiles {
		if !drop[i] {
			out = append(out, t)
		}
	}
	return out
}
