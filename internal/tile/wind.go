package tile

import "fmt"

// Wind is a seat or round wind.
type Wind uint8

const (
	NoWind Wind = iota
	East
	South
	West
	North
)

// Char returns the wind's code character.
func (w Wind) Char() byte {
	switch w {
	case East:
		return 'e'
	case South:
		return 's'
	case West:
		return 'w'
	case North:
		return 'n'
	default:
		return 'x'
	}
}

// String returns the string representation of a wind
func (w Wind) String() string {
	switch w {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	default:
		return "None"
	}
}

// Tile returns the wind tile for w.
func (w Wind) Tile() Tile {
	return Tile{Group: WindGroup, Value: w.Char()}
}

// WindFromChar parses a wind character (either case).
func WindFromChar(c byte) (Wind, bool) {
	switch lower(c) {
	case 'e':
		return East, true
	case 's':
		return South, true
	case 'w':
		return West, true
	case 'n':
		return North, true
	}
	return NoWind, false
}

// Source tells where the last tile of a hand came from.
type Source uint8

const (
	SourceUnknown Source = iota
	LivingWall
	Discard
	LivingWallEnd
	LivingWallEndDiscard
	DeadWall
	RobbedKong
	East14th
)

var sourceChars = [...]byte{
	SourceUnknown:        '.',
	LivingWall:           'w',
	Discard:              'd',
	LivingWallEnd:        'z',
	LivingWallEndDiscard: 'Z',
	DeadWall:             'e',
	RobbedKong:           'k',
	East14th:             '1',
}

// Char returns the source's code character.
func (s Source) Char() byte {
	if int(s) < len(sourceChars) {
		return sourceChars[s]
	}
	return '.'
}

// IsDiscarded reports whether the last tile was claimed from another player.
func (s Source) IsDiscarded() bool {
	return s == Discard || s == LivingWallEndDiscard || s == RobbedKong
}

// IsSelfDrawn reports whether the last tile came from the wall.
func (s Source) IsSelfDrawn() bool {
	return s == LivingWall || s == LivingWallEnd || s == DeadWall || s == East14th
}

// String returns the string representation of a source
func (s Source) String() string {
	switch s {
	case LivingWall:
		return "living wall"
	case Discard:
		return "discard"
	case LivingWallEnd:
		return "last tile of living wall"
	case LivingWallEndDiscard:
		return "last tile of living wall, discarded"
	case DeadWall:
		return "dead wall"
	case RobbedKong:
		return "robbed kong"
	case East14th:
		return "east's 14th tile"
	default:
		return "unknown"
	}
}

// SourceFromChar parses a source character. Source characters are case sensitive.
func SourceFromChar(c byte) (Source, error) {
	for s, sc := range sourceChars {
		if sc == c {
			return Source(s), nil
		}
	}
	return SourceUnknown, fmt.Errorf("unknown last tile source %q", c)
}
