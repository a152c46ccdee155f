package hand

import (
	"errors"
	"strings"

	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/tile"
)

// parsed is an encoded hand after tokenizing and meld construction, before
// the rest tiles are split.
type parsed struct {
	fixed meld.List
	bonus meld.List
	rest  tile.List
	meta  MetaToken
	last  *LastTileToken
}

func (p *parsed) lastText() string {
	if p.last == nil {
		return ""
	}
	return p.last.String()
}

func parse(encoded string) (*parsed, error) {
	tokens, err := Tokenize(encoded)
	if err != nil {
		return nil, err
	}

	p := &parsed{}
	var invalid []*meld.InvalidError
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case MetaToken:
			p.meta = tok
		case LastTileToken:
			last := tok
			p.last = &last
		case RestToken:
			for _, t := range tok.Tiles {
				if t.IsBonus() {
					p.bonus = append(p.bonus, bonusMeld(t.Tile))
					continue
				}
				p.rest = append(p.rest, t.Tile)
			}
		case MeldToken:
			var codes strings.Builder
			for _, t := range tok.Tiles {
				if t.IsBonus() {
					p.bonus = append(p.bonus, bonusMeld(t.Tile))
					continue
				}
				codes.WriteString(t.String())
			}
			if codes.Len() == 0 {
				continue
			}
			m, err := meld.Parse(codes.String())
			var bad *meld.InvalidError
			if errors.As(err, &bad) {
				invalid = append(invalid, bad)
				continue
			}
			if err != nil {
				return nil, err
			}
			p.fixed = append(p.fixed, m)
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidMeldError{Input: encoded, Melds: invalid}
	}
	p.rest.Sort()
	p.bonus.Sort()
	return p, nil
}

func bonusMeld(t tile.Tile) meld.Meld {
	return meld.MustNew([]tile.Tile{t}, meld.BonusState)
}

// lastMeld builds the meld named by the L token, if any.
func (p *parsed) lastMeld(encoded string) (*meld.Meld, error) {
	if p.last == nil || len(p.last.Meld) == 0 {
		return nil, nil
	}
	m, err := meld.Parse(placedCodes(p.last.Meld))
	if err != nil {
		return nil, malformed(encoded, "last meld: %v", err)
	}
	if !m.Contains(p.last.Tile.Tile) {
		return nil, malformed(encoded, "last meld %s does not contain last tile %s", m, p.last.Tile)
	}
	return &m, nil
}
