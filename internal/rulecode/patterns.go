package rulecode

import (
	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

var patternFuncs = map[string]rule.HandFunc{
	"StandardMahJongg": StandardMahJongg,
	"ThirteenOrphans":  ThirteenOrphans,
	"SevenPairs":       SevenPairs,
}

// StandardMahJongg matches four melds and a pair that also reach the rule
// set's minimum score for a win. The matcher applies winner rules before
// asking, so their doubles count towards the minimum.
func StandardMahJongg(h rule.Hand) bool {
	melds := h.Melds()
	if len(melds) != 5 || melds.Count(meld.Meld.IsPair) != 1 {
		return false
	}
	if melds.Count(meld.Meld.IsSingle) > 0 {
		return false
	}
	rs := h.Ruleset()
	if rs == nil {
		return true
	}
	score := h.Score()
	return score.Doubles >= rs.MinMJDoubles && score.Points >= rs.MinMJPoints
}

var orphans = tile.List{
	tile.MustParse("S1"), tile.MustParse("S9"),
	tile.MustParse("B1"), tile.MustParse("B9"),
	tile.MustParse("C1"), tile.MustParse("C9"),
	tile.MustParse("We"), tile.MustParse("Ws"), tile.MustParse("Ww"), tile.MustParse("Wn"),
	tile.MustParse("Db"), tile.MustParse("Dg"), tile.MustParse("Dr"),
}

// ThirteenOrphans matches one of every terminal and honour plus one duplicate.
func ThirteenOrphans(h rule.Hand) bool {
	tiles := h.Melds().Tiles()
	if len(tiles) != 14 {
		return false
	}
	for _, t := range tiles {
		if !orphans.Contains(t) {
			return false
		}
	}
	for _, t := range orphans {
		if !tiles.Contains(t) {
			return false
		}
	}
	return true
}

// SevenPairs matches seven pairs.
func SevenPairs(h rule.Hand) bool {
	melds := h.Melds()
	return len(melds) == 7 && melds.Count(meld.Meld.IsPair) == 7
}
