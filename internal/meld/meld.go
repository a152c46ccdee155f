// Package meld groups tiles into validated melds.
package meld

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/mahjongg/internal/tile"
)

// Kind is the shape of a meld.
type Kind uint8

const (
	Single Kind = iota
	Pair
	Pung
	Kong
	Chow
	Bonus
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Pung:
		return "pung"
	case Kong:
		return "kong"
	case Chow:
		return "chow"
	case Bonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// State is the visibility of a meld.
type State uint8

const (
	Concealed State = iota
	Exposed
	BonusState
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Concealed:
		return "concealed"
	case Exposed:
		return "exposed"
	case BonusState:
		return "bonus"
	default:
		return "unknown"
	}
}

// InvalidError describes a tile group that is not a meld.
type InvalidError struct {
	Text   string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid meld %q: %s", e.Text, e.Reason)
}

// Meld is an immutable, validated group of tiles.
type Meld struct {
	tiles tile.List
	kind  Kind
	state State
}

// New builds a meld from tiles with the given state. Chows are stored in
// ascending order.
func New(tiles []tile.Tile, state State) (Meld, error) {
	tl := make(tile.List, len(tiles))
	copy(tl, tiles)
	text := tl.Code(state == Concealed)

	kind, reason := classify(tl)
	if reason != "" {
		return Meld{}, &InvalidError{Text: text, Reason: reason}
	}
	if kind == Bonus {
		state = BonusState
	} else if state == BonusState {
		return Meld{}, &InvalidError{Text: text, Reason: "only flowers and seasons can be bonus melds"}
	}
	if kind == Chow {
		tl.Sort()
	}
	return Meld{tiles: tl, kind: kind, state: state}, nil
}

// MustNew is New that panics on invalid input. Intended for tests.
func MustNew(tiles []tile.Tile, state State) Meld {
	m, err := New(tiles, state)
	if err != nil {
		panic(err)
	}
	return m
}

// Parse builds a meld from its encoding. All upper case tiles make a
// concealed meld, all lower case an exposed one, and lower/upper/upper/lower
// a concealed (declared) kong.
func Parse(text string) (Meld, error) {
	placed, err := tile.ParseList(text)
	if err != nil {
		return Meld{}, &InvalidError{Text: text, Reason: err.Error()}
	}
	if len(placed) == 0 {
		return Meld{}, &InvalidError{Text: text, Reason: "no tiles"}
	}

	tiles := make([]tile.Tile, len(placed))
	upperCount := 0
	for i, p := range placed {
		tiles[i] = p.Tile
		if p.Concealed {
			upperCount++
		}
	}

	var state State
	mixedKong := false
	switch {
	case placed[0].IsBonus():
		state = BonusState
	case upperCount == len(placed):
		state = Concealed
	case upperCount == 0:
		state = Exposed
	case len(placed) == 4 && !placed[0].Concealed && placed[1].Concealed && placed[2].Concealed && !placed[3].Concealed:
		state = Concealed
		mixedKong = true
	default:
		return Meld{}, &InvalidError{Text: text, Reason: "mixed case is only allowed for a concealed kong"}
	}

	m, err := New(tiles, state)
	var invalid *InvalidError
	if errors.As(err, &invalid) {
		invalid.Text = text
		return Meld{}, invalid
	}
	if err != nil {
		return Meld{}, err
	}
	if mixedKong && m.kind != Kong {
		return Meld{}, &InvalidError{Text: text, Reason: "mixed case is only allowed for a concealed kong"}
	}
	return m, nil
}

func classify(tiles tile.List) (Kind, string) {
	if len(tiles) == 0 || len(tiles) > 4 {
		return Single, fmt.Sprintf("%d tiles", len(tiles))
	}
	for _, t := range tiles {
		if !t.IsKnown() {
			return Single, "unknown tile"
		}
	}
	first := tiles[0]
	if len(tiles) == 1 {
		if first.IsBonus() {
			return Bonus, ""
		}
		return Single, ""
	}
	for _, t := range tiles {
		if t.IsBonus() {
			return Single, "bonus tiles cannot be grouped"
		}
	}

	identical := true
	for _, t := range tiles[1:] {
		if t != first {
			identical = false
			break
		}
	}
	switch len(tiles) {
	case 2:
		if identical {
			return Pair, ""
		}
		return Single, "pair tiles differ"
	case 3:
		if identical {
			return Pung, ""
		}
		if isRun(tiles) {
			return Chow, ""
		}
		return Single, "neither a pung nor a run of one suit"
	default:
		if identical {
			return Kong, ""
		}
		return Single, "kong tiles differ"
	}
}

func isRun(tiles tile.List) bool {
	sorted := make(tile.List, len(tiles))
	copy(sorted, tiles)
	sorted.Sort()
	if !sorted[0].IsSuit() {
		return false
	}
	for i := 1; i < len(sorted); i++ {
		next, ok := sorted[i-1].Next(1)
		if !ok || next != sorted[i] {
			return false
		}
	}
	return true
}

// Tiles returns a copy of the meld's tiles.
func (m Meld) Tiles() tile.List {
	out := make(tile.List, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// First returns the first tile of the meld.
func (m Meld) First() tile.Tile { return m.tiles[0] }

// Len returns the number of tiles.
func (m Meld) Len() int { return len(m.tiles) }

// Kind returns the meld's shape.
func (m Meld) Kind() Kind { return m.kind }

// State returns the meld's visibility.
func (m Meld) State() State { return m.state }

// Group returns the group of the meld's tiles.
func (m Meld) Group() tile.Group { return m.tiles[0].Group }

func (m Meld) IsSingle() bool    { return m.kind == Single }
func (m Meld) IsPair() bool      { return m.kind == Pair }
func (m Meld) IsPung() bool      { return m.kind == Pung }
func (m Meld) IsKong() bool      { return m.kind == Kong }
func (m Meld) IsChow() bool      { return m.kind == Chow }
func (m Meld) IsBonus() bool     { return m.kind == Bonus }
func (m Meld) IsConcealed() bool { return m.state == Concealed }
func (m Meld) IsExposed() bool   { return m.state == Exposed }

// IsPungOrKong reports whether the meld is three or four identical tiles.
func (m Meld) IsPungOrKong() bool {
	return m.kind == Pung || m.kind == Kong
}

// IsDeclared reports whether the meld can no longer be rearranged: exposed
// melds and every kong.
func (m Meld) IsDeclared() bool {
	return m.state == Exposed || m.kind == Kong
}

// IsMajor reports whether every tile is a terminal or an honour.
func (m Meld) IsMajor() bool {
	for _, t := range m.tiles {
		if !t.IsMajor() {
			return false
		}
	}
	return true
}

// Contains reports whether t is part of the meld.
func (m Meld) Contains(t tile.Tile) bool {
	return m.tiles.Contains(t)
}

// Expose returns the meld as an exposed meld.
func (m Meld) Expose() Meld {
	if m.state == BonusState {
		return m
	}
	m.tiles = m.Tiles()
	m.state = Exposed
	return m
}

// Conceal returns the meld as a concealed meld.
func (m Meld) Conceal() Meld {
	if m.state == BonusState {
		return m
	}
	m.tiles = m.Tiles()
	m.state = Concealed
	return m
}

// Without returns the tiles of m with one occurrence of t removed.
func (m Meld) Without(t tile.Tile) (tile.List, bool) {
	out := m.Tiles()
	for i, x := range out {
		if x == t {
			return append(out[:i], out[i+1:]...), true
		}
	}
	return out, false
}

// String returns the meld's encoding.
func (m Meld) String() string {
	switch {
	case m.state == Concealed && m.kind == Kong:
		var b strings.Builder
		for i, t := range m.tiles {
			b.WriteString(t.Code(i == 1 || i == 2))
		}
		return b.String()
	case m.state == Concealed:
		return m.tiles.Code(true)
	default:
		return m.tiles.Code(false)
	}
}

// Equal reports whether two melds have the same tiles, kind and state.
func (m Meld) Equal(o Meld) bool {
	return m.String() == o.String()
}

func (m Meld) less(o Meld) bool {
	for i := 0; i < len(m.tiles) && i < len(o.tiles); i++ {
		if m.tiles[i] != o.tiles[i] {
			return m.tiles[i].Less(o.tiles[i])
		}
	}
	if len(m.tiles) != len(o.tiles) {
		return len(m.tiles) < len(o.tiles)
	}
	return m.state < o.state
}

// List is a slice of melds.
type List []Meld

// Sort orders melds by their tiles.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].less(l[j]) })
}

// Clone returns a copy of the list.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Tiles returns all tiles of all melds.
func (l List) Tiles() tile.List {
	var out tile.List
	for _, m := range l {
		out = append(out, m.tiles...)
	}
	return out
}

// TileCount returns the number of tiles in all melds.
func (l List) TileCount() int {
	n := 0
	for _, m := range l {
		n += len(m.tiles)
	}
	return n
}

// Count returns the number of melds matching fn.
func (l List) Count(fn func(Meld) bool) int {
	n := 0
	for _, m := range l {
		if fn(m) {
			n++
		}
	}
	return n
}

// String joins the meld encodings with spaces.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, m := range l {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
