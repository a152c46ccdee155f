// Package tile defines mah jongg tiles and their two-character codes.
//
// A tile code is a group letter followed by a value, e.g. "S5" (five of
// stones), "b1" (one of bamboo), "Dr" (red dragon), "We" (east wind) or "fs"
// (south flower). The case of the group letter tells whether the tile was
// seen concealed (upper case) or exposed (lower case); that visibility is
// kept by Placed or by the owning meld, never by Tile itself.
package tile

import (
	"fmt"
	"sort"
	"strings"
)

// Group is the family a tile belongs to.
type Group uint8

const (
	Stone Group = iota
	Bamboo
	Character
	WindGroup
	Dragon
	Flower
	Season
	UnknownGroup
)

var groupChars = [...]byte{
	Stone:        's',
	Bamboo:       'b',
	Character:    'c',
	WindGroup:    'w',
	Dragon:       'd',
	Flower:       'f',
	Season:       'y',
	UnknownGroup: 'x',
}

// valueOrder lists the legal values of each group in sort order.
var valueOrder = [...]string{
	Stone:        "123456789",
	Bamboo:       "123456789",
	Character:    "123456789",
	WindGroup:    "eswn",
	Dragon:       "bgr",
	Flower:       "eswn",
	Season:       "eswn",
	UnknownGroup: "x",
}

// Char returns the lower case group letter.
func (g Group) Char() byte {
	if int(g) < len(groupChars) {
		return groupChars[g]
	}
	return '?'
}

// String returns the string representation of a group
func (g Group) String() string {
	switch g {
	case Stone:
		return "Stone"
	case Bamboo:
		return "Bamboo"
	case Character:
		return "Character"
	case WindGroup:
		return "Wind"
	case Dragon:
		return "Dragon"
	case Flower:
		return "Flower"
	case Season:
		return "Season"
	default:
		return "Unknown"
	}
}

// IsSuit reports whether tiles of this group carry numeric values.
func (g Group) IsSuit() bool {
	return g <= Character
}

// IsHonour reports whether the group is winds or dragons.
func (g Group) IsHonour() bool {
	return g == WindGroup || g == Dragon
}

// IsBonus reports whether the group is flowers or seasons.
func (g Group) IsBonus() bool {
	return g == Flower || g == Season
}

// Suits lists the numeric groups in split order.
var Suits = [...]Group{Stone, Bamboo, Character}

// GroupFromChar maps a group letter (either case) to its Group.
func GroupFromChar(c byte) (Group, bool) {
	lc := lower(c)
	for g, gc := range groupChars {
		if gc == lc && Group(g) != UnknownGroup {
			return Group(g), true
		}
	}
	return UnknownGroup, false
}

// Tile is an immutable tile identity.
type Tile struct {
	Group Group
	Value byte
}

// Unknown is the sentinel used when a tile is not known, e.g. a missing
// last tile.
var Unknown = Tile{Group: UnknownGroup, Value: 'x'}

// New creates a tile, validating the value against the group.
func New(g Group, value byte) (Tile, error) {
	if g >= UnknownGroup {
		return Unknown, fmt.Errorf("invalid tile group %d", g)
	}
	if strings.IndexByte(valueOrder[g], value) < 0 {
		return Unknown, fmt.Errorf("invalid value %q for %s", value, g)
	}
	return Tile{Group: g, Value: value}, nil
}

// MustParse parses a tile code and panics on error. Intended for tables and tests.
func MustParse(code string) Tile {
	p, err := ParsePlaced(code)
	if err != nil {
		panic(err)
	}
	return p.Tile
}

// IsKnown reports whether t is a real tile.
func (t Tile) IsKnown() bool {
	return t.Group != UnknownGroup
}

// IsSuit reports whether t is a stone, bamboo or character tile.
func (t Tile) IsSuit() bool { return t.Group.IsSuit() }

// IsHonour reports whether t is a wind or dragon.
func (t Tile) IsHonour() bool { return t.Group.IsHonour() }

// IsBonus reports whether t is a flower or season.
func (t Tile) IsBonus() bool { return t.Group.IsBonus() }

// IsTerminal reports whether t is a one or nine of a suit.
func (t Tile) IsTerminal() bool {
	return t.IsSuit() && (t.Value == '1' || t.Value == '9')
}

// IsMajor reports whether t is a terminal or an honour.
func (t Tile) IsMajor() bool {
	return t.IsTerminal() || t.IsHonour()
}

// IsMinor reports whether t is a suit tile from two to eight.
func (t Tile) IsMinor() bool {
	return t.IsSuit() && !t.IsTerminal()
}

// Number returns the numeric value of a suit tile, 0 otherwise.
func (t Tile) Number() int {
	if !t.IsSuit() {
		return 0
	}
	return int(t.Value - '0')
}

// Next returns the suit tile with value offset by delta.
func (t Tile) Next(delta int) (Tile, bool) {
	if !t.IsSuit() {
		return Unknown, false
	}
	n := t.Number() + delta
	if n < 1 || n > 9 {
		return Unknown, false
	}
	return Tile{Group: t.Group, Value: byte('0' + n)}, true
}

// Wind returns the wind a wind, flower or season tile belongs to.
func (t Tile) Wind() Wind {
	switch t.Group {
	case WindGroup, Flower, Season:
		w, _ := WindFromChar(t.Value)
		return w
	}
	return NoWind
}

// Code returns the two-character code, upper case when concealed.
func (t Tile) Code(concealed bool) string {
	g := t.Group.Char()
	if concealed {
		g = upper(g)
	}
	return string([]byte{g, t.Value})
}

// String returns the concealed code, e.g. "S5".
func (t Tile) String() string {
	return t.Code(true)
}

// Less orders tiles by group then value.
func (t Tile) Less(o Tile) bool {
	if t.Group != o.Group {
		return t.Group < o.Group
	}
	return t.rank() < o.rank()
}

func (t Tile) rank() int {
	if int(t.Group) >= len(valueOrder) {
		return -1
	}
	return strings.IndexByte(valueOrder[t.Group], t.Value)
}

// Placed is a tile together with the visibility it was seen with.
type Placed struct {
	Tile
	Concealed bool
}

// NoTile is the zero Placed used for "no robbed tile" and "unknown last tile".
var NoTile = Placed{Tile: Unknown}

// String returns the tile code in the case matching its visibility.
func (p Placed) String() string {
	return p.Code(p.Concealed)
}

// ParsePlaced parses a two-character tile code.
func ParsePlaced(code string) (Placed, error) {
	if len(code) != 2 {
		return NoTile, fmt.Errorf("tile code %q must have two characters", code)
	}
	if lower(code[0]) == 'x' && code[1] == 'x' {
		return NoTile, nil
	}
	g, ok := GroupFromChar(code[0])
	if !ok {
		return NoTile, fmt.Errorf("tile code %q has unknown group %q", code, code[0])
	}
	t, err := New(g, code[1])
	if err != nil {
		return NoTile, fmt.Errorf("tile code %q: %w", code, err)
	}
	return Placed{Tile: t, Concealed: isUpper(code[0])}, nil
}

// ParseList parses concatenated tile codes such as "S1S2S3Db".
func ParseList(codes string) ([]Placed, error) {
	if len(codes)%2 != 0 {
		return nil, fmt.Errorf("tile list %q has odd length", codes)
	}
	result := make([]Placed, 0, len(codes)/2)
	for i := 0; i < len(codes); i += 2 {
		p, err := ParsePlaced(codes[i : i+2])
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// List is a slice of tiles.
type List []Tile

// Sort sorts the list in place by group and value.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Less(l[j]) })
}

// Count returns how often t occurs.
func (l List) Count(t Tile) int {
	n := 0
	for _, x := range l {
		if x == t {
			n++
		}
	}
	return n
}

// Contains reports whether t occurs at least once.
func (l List) Contains(t Tile) bool {
	return l.Count(t) > 0
}

// Code concatenates the tile codes.
func (l List) Code(concealed bool) string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Code(concealed))
	}
	return b.String()
}

// Playable returns every distinct non-bonus tile in sort order.
func Playable() List {
	var result List
	for g := Stone; g <= Dragon; g++ {
		for i := 0; i < len(valueOrder[g]); i++ {
			result = append(result, Tile{Group: g, Value: valueOrder[g][i]})
		}
	}
	return result
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
