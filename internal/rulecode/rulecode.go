// Package rulecode holds the predicates that rule sets refer to by name.
//
// Meld predicates look at one meld of a hand, hand predicates at the whole
// hand. Winner predicates and winning patterns are ordinary hand predicates;
// the matcher only asks them once a hand claims to have won.
package rulecode

import (
	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

// Library returns a library with every predicate of this package registered.
func Library() *rule.Library {
	lib := rule.NewLibrary()
	for name, fn := range meldFuncs {
		lib.RegisterMeld(name, fn)
	}
	for name, fn := range handFuncs {
		lib.RegisterHand(name, fn)
	}
	for name, fn := range winnerFuncs {
		lib.RegisterHand(name, fn)
	}
	for name, fn := range patternFuncs {
		lib.RegisterHand(name, fn)
	}
	return lib
}

var meldFuncs = map[string]rule.MeldFunc{
	"DragonPungKong":     DragonPungKong,
	"OwnWindPungKong":    OwnWindPungKong,
	"RoundWindPungKong":  RoundWindPungKong,
	"DragonPair":         DragonPair,
	"OwnWindPair":        OwnWindPair,
	"RoundWindPair":      RoundWindPair,
	"ExposedMinorPung":   pungRule(meld.Pung, meld.Exposed, false),
	"ExposedMajorPung":   pungRule(meld.Pung, meld.Exposed, true),
	"ConcealedMinorPung": pungRule(meld.Pung, meld.Concealed, false),
	"ConcealedMajorPung": pungRule(meld.Pung, meld.Concealed, true),
	"ExposedMinorKong":   pungRule(meld.Kong, meld.Exposed, false),
	"ExposedMajorKong":   pungRule(meld.Kong, meld.Exposed, true),
	"ConcealedMinorKong": pungRule(meld.Kong, meld.Concealed, false),
	"ConcealedMajorKong": pungRule(meld.Kong, meld.Concealed, true),
	"Flower":             bonusRule(tile.Flower),
	"Season":             bonusRule(tile.Season),
}

var handFuncs = map[string]rule.HandFunc{
	"OwnFlowerOwnSeason":  OwnFlowerOwnSeason,
	"AllFlowers":          allBonus(tile.Flower),
	"AllSeasons":          allBonus(tile.Season),
	"LittleThreeDragons":  LittleThreeDragons,
	"BigThreeDragons":     BigThreeDragons,
	"LittleFourJoys":      LittleFourJoys,
	"BigFourJoys":         BigFourJoys,
	"ThreeConcealedPungs": ThreeConcealedPungs,
}

// DragonPungKong matches a pung or kong of dragons.
func DragonPungKong(_ rule.Hand, m meld.Meld) bool {
	return m.Group() == tile.Dragon && m.IsPungOrKong()
}

// OwnWindPungKong matches a pung or kong of the player's seat wind.
func OwnWindPungKong(h rule.Hand, m meld.Meld) bool {
	return m.IsPungOrKong() && isWind(m, h.OwnWind())
}

// RoundWindPungKong matches a pung or kong of the prevailing wind.
func RoundWindPungKong(h rule.Hand, m meld.Meld) bool {
	return m.IsPungOrKong() && isWind(m, h.RoundWind())
}

// DragonPair matches a pair of dragons.
func DragonPair(_ rule.Hand, m meld.Meld) bool {
	return m.IsPair() && m.Group() == tile.Dragon
}

// OwnWindPair matches a pair of the player's seat wind.
func OwnWindPair(h rule.Hand, m meld.Meld) bool {
	return m.IsPair() && isWind(m, h.OwnWind())
}

// RoundWindPair matches a pair of the prevailing wind.
func RoundWindPair(h rule.Hand, m meld.Meld) bool {
	return m.IsPair() && isWind(m, h.RoundWind())
}

func isWind(m meld.Meld, w tile.Wind) bool {
	return w != tile.NoWind && m.Group() == tile.WindGroup && m.First().Wind() == w
}

// pungRule builds the basic point rules for pungs and kongs. A concealed kong
// is declared, so visibility comes from the meld state rather than from
// IsDeclared.
func pungRule(kind meld.Kind, state meld.State, major bool) rule.MeldFunc {
	return func(_ rule.Hand, m meld.Meld) bool {
		return m.Kind() == kind && m.State() == state && m.IsMajor() == major
	}
}

func bonusRule(g tile.Group) rule.MeldFunc {
	return func(_ rule.Hand, m meld.Meld) bool {
		return m.IsBonus() && m.Group() == g
	}
}

// OwnFlowerOwnSeason matches a hand holding both the flower and the season
// of the player's seat wind.
func OwnFlowerOwnSeason(h rule.Hand) bool {
	var flower, season bool
	for _, m := range h.BonusMelds() {
		if m.First().Wind() != h.OwnWind() {
			continue
		}
		switch m.Group() {
		case tile.Flower:
			flower = true
		case tile.Season:
			season = true
		}
	}
	return flower && season
}

func allBonus(g tile.Group) rule.HandFunc {
	return func(h rule.Hand) bool {
		seen := make(map[tile.Tile]bool)
		for _, m := range h.BonusMelds() {
			if m.Group() == g {
				seen[m.First()] = true
			}
		}
		return len(seen) == 4
	}
}

// LittleThreeDragons matches two dragon pungs or kongs and a dragon pair.
func LittleThreeDragons(h rule.Hand) bool {
	melds := h.Melds()
	return countPungs(melds, tile.Dragon) == 2 && countPairs(melds, tile.Dragon) == 1
}

// BigThreeDragons matches three dragon pungs or kongs.
func BigThreeDragons(h rule.Hand) bool {
	return countPungs(h.Melds(), tile.Dragon) == 3
}

// LittleFourJoys matches three wind pungs or kongs and a wind pair.
func LittleFourJoys(h rule.Hand) bool {
	melds := h.Melds()
	return countPungs(melds, tile.WindGroup) == 3 && countPairs(melds, tile.WindGroup) == 1
}

// BigFourJoys matches four wind pungs or kongs.
func BigFourJoys(h rule.Hand) bool {
	return countPungs(h.Melds(), tile.WindGroup) == 4
}

// ThreeConcealedPungs matches at least three concealed pungs or kongs.
func ThreeConcealedPungs(h rule.Hand) bool {
	return h.Melds().Count(func(m meld.Meld) bool {
		return m.IsPungOrKong() && m.IsConcealed()
	}) >= 3
}

func countPungs(melds meld.List, g tile.Group) int {
	return melds.Count(func(m meld.Meld) bool { return m.IsPungOrKong() && m.Group() == g })
}

func countPairs(melds meld.List, g tile.Group) int {
	return melds.Count(func(m meld.Meld) bool { return m.IsPair() && m.Group() == g })
}
