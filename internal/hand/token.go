package hand

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/mahjongg/internal/tile"
)

// maxLastTokenLen is a tile code plus a chow or pung; the last tile never
// completes a kong.
const maxLastTokenLen = 8

// Token is one whitespace separated part of an encoded hand.
type Token interface {
	String() string
	token()
}

// MeldToken is a pre-grouped meld, e.g. "S1S2S3" or "dbDbDbdb".
type MeldToken struct {
	Tiles []tile.Placed
}

// RestToken holds tiles that still have to be split into melds.
type RestToken struct {
	Tiles []tile.Placed
}

// MetaToken carries the hand's winds, win state, last tile source and
// declarations, e.g. "Mesw" or "mee.a".
type MetaToken struct {
	Won          bool
	MayWin       bool
	OwnWind      tile.Wind
	RoundWind    tile.Wind
	Source       tile.Source
	Declarations string
}

// LastTileToken names the last tile and optionally the meld it completed.
type LastTileToken struct {
	Tile tile.Placed
	Meld []tile.Placed
}

func (MeldToken) token()     {}
func (RestToken) token()     {}
func (MetaToken) token()     {}
func (LastTileToken) token() {}

func (t MeldToken) String() string {
	return placedCodes(t.Tiles)
}

func (t RestToken) String() string {
	return "R" + placedCodes(t.Tiles)
}

func (t MetaToken) String() string {
	var b strings.Builder
	switch {
	case t.Won:
		b.WriteByte('M')
	case t.MayWin:
		b.WriteByte('m')
	default:
		b.WriteByte('x')
	}
	b.WriteByte(t.OwnWind.Char())
	b.WriteByte(t.RoundWind.Char())
	if t.Source != tile.SourceUnknown || t.Declarations != "" {
		b.WriteByte(t.Source.Char())
	}
	b.WriteString(t.Declarations)
	return b.String()
}

func (t LastTileToken) String() string {
	return "L" + t.Tile.String() + placedCodes(t.Meld)
}

func placedCodes(tiles []tile.Placed) string {
	var b strings.Builder
	for _, p := range tiles {
		b.WriteString(p.String())
	}
	return b.String()
}

// Tokenize splits an encoded hand into validated tokens. It checks the
// grammar only; whether meld tokens form valid melds is checked later.
func Tokenize(encoded string) ([]Token, error) {
	var (
		tokens              []Token
		rests, metas, lasts int
	)
	for _, part := range strings.Fields(encoded) {
		switch c := part[0]; {
		case c == 'R':
			rests++
			if rests > 1 {
				return nil, malformed(encoded, "more than one R token")
			}
			tiles, err := knownTiles(part[1:])
			if err != nil {
				return nil, malformed(encoded, "rest %q: %v", part, err)
			}
			tokens = append(tokens, RestToken{Tiles: tiles})
		case c == 'M' || c == 'm' || c == 'x':
			metas++
			if metas > 1 {
				return nil, malformed(encoded, "more than one metadata token")
			}
			meta, err := parseMeta(part)
			if err != nil {
				return nil, malformed(encoded, "%v", err)
			}
			tokens = append(tokens, meta)
		case c == 'L':
			lasts++
			if lasts > 1 {
				return nil, malformed(encoded, "more than one L token")
			}
			last, err := parseLast(part)
			if err != nil {
				return nil, malformed(encoded, "%v", err)
			}
			tokens = append(tokens, last)
		default:
			if _, ok := tile.GroupFromChar(c); !ok {
				return nil, malformed(encoded, "unknown token %q", part)
			}
			tiles, err := knownTiles(part)
			if err != nil {
				return nil, malformed(encoded, "meld %q: %v", part, err)
			}
			tokens = append(tokens, MeldToken{Tiles: tiles})
		}
	}
	if metas == 0 {
		return nil, malformed(encoded, "missing metadata token")
	}
	return tokens, nil
}

func knownTiles(codes string) ([]tile.Placed, error) {
	tiles, err := tile.ParseList(codes)
	if err != nil {
		return nil, err
	}
	for _, p := range tiles {
		if !p.IsKnown() {
			return nil, errors.New("unknown tile xx")
		}
	}
	return tiles, nil
}

func parseMeta(part string) (MetaToken, error) {
	if len(part) < 3 {
		return MetaToken{}, fmt.Errorf("metadata %q needs own and round wind", part)
	}
	meta := MetaToken{
		Won:    part[0] == 'M',
		MayWin: part[0] != 'x',
	}
	var ok bool
	if meta.OwnWind, ok = tile.WindFromChar(part[1]); !ok {
		return MetaToken{}, fmt.Errorf("metadata %q: unknown own wind %q", part, part[1])
	}
	if meta.RoundWind, ok = tile.WindFromChar(part[2]); !ok {
		return MetaToken{}, fmt.Errorf("metadata %q: unknown round wind %q", part, part[2])
	}
	if len(part) > 3 {
		source, err := tile.SourceFromChar(part[3])
		if err != nil {
			return MetaToken{}, fmt.Errorf("metadata %q: %v", part, err)
		}
		meta.Source = source
		meta.Declarations = part[4:]
	}
	return meta, nil
}

func parseLast(part string) (LastTileToken, error) {
	body := part[1:]
	if len(body) < 2 {
		return LastTileToken{}, fmt.Errorf("last tile token %q has no tile", part)
	}
	if len(body) > maxLastTokenLen {
		return LastTileToken{}, fmt.Errorf("last tile %q cannot complete a kong", part)
	}
	t, err := tile.ParsePlaced(body[:2])
	if err != nil {
		return LastTileToken{}, fmt.Errorf("last tile %q: %v", part, err)
	}
	last := LastTileToken{Tile: t}
	if len(body) > 2 {
		if !t.IsKnown() {
			return LastTileToken{}, fmt.Errorf("last meld %q given for an unknown tile", part)
		}
		if last.Meld, err = knownTiles(body[2:]); err != nil {
			return LastTileToken{}, fmt.Errorf("last meld %q: %v", part, err)
		}
	}
	return last, nil
}
