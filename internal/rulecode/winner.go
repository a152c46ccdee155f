package rulecode

import (
	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/tile"
)

var winnerFuncs = map[string]rule.HandFunc{
	"LastTileCompletesPairMinor": lastPair(false),
	"LastTileCompletesPairMajor": lastPair(true),
	"LastTileFromWall":           LastTileFromWall,
	"NoChow":                     NoChow,
	"OnlyConcealedMelds":         OnlyConcealedMelds,
	"FalseColorGame":             FalseColorGame,
	"TrueColorGame":              TrueColorGame,
	"ConcealedTrueColorGame":     ConcealedTrueColorGame,
	"OnlyTerminalsAndHonours":    OnlyTerminalsAndHonours,
	"AllHonours":                 AllHonours,
	"HiddenTreasure":             HiddenTreasure,
	"HeadsAndTails":              HeadsAndTails,
	"FourfoldPlenty":             FourfoldPlenty,
	"FourBlessings":              FourBlessings,
	"ThreeGreatScholars":         ThreeGreatScholars,
	"AllGreens":                  AllGreens,
	"GatheringPlumBlossom":       lastTileFrom("S5", tile.DeadWall),
	"CatchingMoon":               CatchingMoon,
	"ScratchingCarryingPole":     lastTileFrom("B2", tile.RobbedKong),
	"HeavenlyHand":               HeavenlyHand,
	"LastTileFromDeadWall":       sourceIs(tile.DeadWall),
	"LastTileOfWall":             sourceIs(tile.LivingWallEnd),
	"LastTileOfWallDiscarded":    sourceIs(tile.LivingWallEndDiscard),
	"RobbingKong":                sourceIs(tile.RobbedKong),
	"OriginalCall":               OriginalCall,
}

func lastPair(major bool) rule.HandFunc {
	return func(h rule.Hand) bool {
		m, ok := h.LastMeld()
		return ok && m.IsPair() && m.IsMajor() == major
	}
}

func sourceIs(s tile.Source) rule.HandFunc {
	return func(h rule.Hand) bool {
		return h.LastSource() == s
	}
}

func lastTileFrom(code string, s tile.Source) rule.HandFunc {
	want := tile.MustParse(code)
	return func(h rule.Hand) bool {
		return h.LastSource() == s && h.LastTile().Tile == want
	}
}

// LastTileFromWall matches a hand completed by a tile drawn from the wall.
func LastTileFromWall(h rule.Hand) bool {
	return h.LastSource().IsSelfDrawn()
}

// NoChow matches a hand without chows.
func NoChow(h rule.Hand) bool {
	return h.Melds().Count(meld.Meld.IsChow) == 0
}

// OnlyConcealedMelds matches a hand without exposed melds. Concealed kongs
// do not count as exposed.
func OnlyConcealedMelds(h rule.Hand) bool {
	return h.Melds().Count(meld.Meld.IsExposed) == 0
}

// FalseColorGame matches a hand of one suit mixed with honours.
func FalseColorGame(h rule.Hand) bool {
	suits, honours := groups(h.Melds())
	return suits == 1 && honours
}

// TrueColorGame matches a hand of a single suit.
func TrueColorGame(h rule.Hand) bool {
	suits, honours := groups(h.Melds())
	return suits == 1 && !honours
}

// ConcealedTrueColorGame matches a single-suit hand without exposed melds.
func ConcealedTrueColorGame(h rule.Hand) bool {
	return TrueColorGame(h) && OnlyConcealedMelds(h)
}

// OnlyTerminalsAndHonours matches a hand of ones, nines, winds and dragons.
func OnlyTerminalsAndHonours(h rule.Hand) bool {
	return allTiles(h, tile.Tile.IsMajor)
}

// AllHonours matches a hand of winds and dragons only.
func AllHonours(h rule.Hand) bool {
	return allTiles(h, tile.Tile.IsHonour)
}

// HeadsAndTails matches a hand of ones and nines only.
func HeadsAndTails(h rule.Hand) bool {
	return allTiles(h, tile.Tile.IsTerminal)
}

// HiddenTreasure matches four concealed pungs or kongs and a pair, where the
// last pung was not completed with a discard.
func HiddenTreasure(h rule.Hand) bool {
	melds := h.Melds()
	if melds.Count(meld.Meld.IsExposed) > 0 || melds.Count(meld.Meld.IsPungOrKong) != 4 {
		return false
	}
	if h.LastSource().IsDiscarded() {
		last, ok := h.LastMeld()
		return ok && last.IsPair()
	}
	return true
}

// FourfoldPlenty matches four kongs.
func FourfoldPlenty(h rule.Hand) bool {
	return h.Melds().Count(meld.Meld.IsKong) == 4
}

// FourBlessings matches four pungs or kongs of winds.
func FourBlessings(h rule.Hand) bool {
	return countPungs(h.Melds(), tile.WindGroup) == 4
}

// ThreeGreatScholars matches three pungs or kongs of dragons.
func ThreeGreatScholars(h rule.Hand) bool {
	return countPungs(h.Melds(), tile.Dragon) == 3
}

var greens = tile.List{
	tile.MustParse("B2"), tile.MustParse("B3"), tile.MustParse("B4"),
	tile.MustParse("B6"), tile.MustParse("B8"), tile.MustParse("Dg"),
}

// AllGreens matches a hand made only of green tiles.
func AllGreens(h rule.Hand) bool {
	return allTiles(h, greens.Contains)
}

// CatchingMoon matches a hand completed with the one of stones as the last
// tile of the wall, drawn or discarded.
func CatchingMoon(h rule.Hand) bool {
	s := h.LastSource()
	return (s == tile.LivingWallEnd || s == tile.LivingWallEndDiscard) &&
		h.LastTile().Tile == tile.MustParse("S1")
}

// HeavenlyHand matches East winning with the first fourteen tiles dealt.
func HeavenlyHand(h rule.Hand) bool {
	return h.LastSource() == tile.East14th && h.OwnWind() == tile.East
}

// OriginalCall matches a hand whose owner called calling with the first discard.
func OriginalCall(h rule.Hand) bool {
	return h.HasDeclaration('a')
}

func groups(melds meld.List) (suits int, honours bool) {
	seen := make(map[tile.Group]bool)
	for _, m := range melds {
		g := m.Group()
		if g.IsHonour() {
			honours = true
			continue
		}
		if !seen[g] {
			seen[g] = true
			suits++
		}
	}
	return suits, honours
}

func allTiles(h rule.Hand, fn func(tile.Tile) bool) bool {
	tiles := h.Melds().Tiles()
	if len(tiles) == 0 {
		return false
	}
	for _, t := range tiles {
		if !fn(t) {
			return false
		}
	}
	return true
}
