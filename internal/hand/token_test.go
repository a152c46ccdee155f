package hand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/mahjongg/internal/tile"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tokens, err := Tokenize("S1S2S3 dbDbDbdb fe RB2B3 Mesdz LS1S1S2S3")
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.IsType(t, MeldToken{}, tokens[0])
	assert.Equal(t, "dbDbDbdb", tokens[1].String())
	assert.Equal(t, "fe", tokens[2].String())
	assert.Equal(t, "RB2B3", tokens[3].String())

	meta, ok := tokens[4].(MetaToken)
	require.True(t, ok)
	assert.True(t, meta.Won)
	assert.True(t, meta.MayWin)
	assert.Equal(t, tile.East, meta.OwnWind)
	assert.Equal(t, tile.South, meta.RoundWind)
	assert.Equal(t, tile.Discard, meta.Source)
	assert.Equal(t, "z", meta.Declarations)
	assert.Equal(t, "Mesdz", meta.String())

	last, ok := tokens[5].(LastTileToken)
	require.True(t, ok)
	assert.Equal(t, "S1", last.Tile.String())
	assert.Len(t, last.Meld, 3)
}

func TestTokenizeMeta(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text   string
		won    bool
		mayWin bool
		want   string
	}{
		{"Mee", true, true, "Mee"},
		{"mwn", false, true, "mwn"},
		{"xse", false, false, "xse"},
		{"mee.a", false, true, "mee.a"},
		{"Mne.", true, true, "Mne"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens, err := Tokenize(tt.text)
			require.NoError(t, err)
			meta := tokens[0].(MetaToken)
			assert.Equal(t, tt.won, meta.Won)
			assert.Equal(t, tt.mayWin, meta.MayWin)
			assert.Equal(t, tt.want, meta.String())
		})
	}
}

func TestTokenizeMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
	}{
		{"missing metadata", "S1S2S3 RS4S5"},
		{"two rests", "RS1 RS2 Mee"},
		{"two metadata tokens", "Mee mee"},
		{"two last tiles", "S1S2S3 Mee LS1 LS2"},
		{"last tile completes kong", "S1S1S1S1 Mee LS1S1S1S1S1"},
		{"unknown prefix", "Q1Q2 Mee"},
		{"bad tile code", "S0S1 Mee"},
		{"unknown tile in meld", "xxS1 Mee"},
		{"unknown tile in rest", "RS1xx Mee"},
		{"bad own wind", "Mqe"},
		{"bad round wind", "Meq"},
		{"short metadata", "Me"},
		{"bad source", "Mee?"},
		{"odd rest", "RS1S Mee"},
		{"last meld for unknown tile", "Mee LxxS1S2S3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput), err.Error())
			var malformed *MalformedInputError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.text, malformed.Input)
		})
	}
}
