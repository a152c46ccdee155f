package meld

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/mahjongg/internal/tile"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text  string
		kind  Kind
		state State
		str   string
	}{
		{text: "S1S2S3", kind: Chow, state: Concealed, str: "S1S2S3"},
		{text: "S3S1S2", kind: Chow, state: Concealed, str: "S1S2S3"},
		{text: "b5b5b5", kind: Pung, state: Exposed, str: "b5b5b5"},
		{text: "DrDr", kind: Pair, state: Concealed, str: "DrDr"},
		{text: "wewewewe", kind: Kong, state: Exposed, str: "wewewewe"},
		{text: "c7C7C7c7", kind: Kong, state: Concealed, str: "c7C7C7c7"},
		{text: "C7C7C7C7", kind: Kong, state: Concealed, str: "c7C7C7c7"},
		{text: "fe", kind: Bonus, state: BonusState, str: "fe"},
		{text: "Ys", kind: Bonus, state: BonusState, str: "ys"},
		{text: "B9", kind: Single, state: Concealed, str: "B9"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind())
			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, tt.str, m.String())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		"S1S3S5",     // not a run
		"S1B2C3",     // mixed suits
		"WeWsWw",     // honours never form a run
		"S1S1S1S1S1", // too long
		"S1s1",       // mixed case pair
		"s1S1S1s2",   // mixed case, not a kong
		"fefs",       // grouped bonus tiles
		"S8S9",       // two different tiles
		"Q1",         // unknown group
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			var invalid *InvalidError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, text, invalid.Text)
		})
	}
}

func TestDeclared(t *testing.T) {
	t.Parallel()
	assert.False(t, mustParse(t, "S1S2S3").IsDeclared())
	assert.True(t, mustParse(t, "s1s2s3").IsDeclared())
	assert.True(t, mustParse(t, "s1S1S1s1").IsDeclared())
}

func TestExposeConceal(t *testing.T) {
	t.Parallel()
	m := mustParse(t, "B4B4B4")
	exposed := m.Expose()
	assert.Equal(t, "b4b4b4", exposed.String())
	assert.Equal(t, "B4B4B4", m.String(), "original must not change")
	assert.Equal(t, "B4B4B4", exposed.Conceal().String())
}

func TestMajor(t *testing.T) {
	t.Parallel()
	assert.True(t, mustParse(t, "C9C9C9").IsMajor())
	assert.True(t, mustParse(t, "DgDg").IsMajor())
	assert.False(t, mustParse(t, "C7C8C9").IsMajor())
}

func TestWithout(t *testing.T) {
	t.Parallel()
	rest, ok := mustParse(t, "S4S5S6").Without(tile.MustParse("S5"))
	require.True(t, ok)
	assert.Equal(t, "S4S6", rest.Code(true))
}

func TestListSortAndString(t *testing.T) {
	t.Parallel()
	l := List{mustParse(t, "DrDrDr"), mustParse(t, "s7s8s9"), mustParse(t, "S1S1")}
	l.Sort()
	assert.Equal(t, "S1S1 s7s8s9 DrDrDr", l.String())
	assert.Equal(t, 8, l.TileCount())
	assert.Equal(t, 1, l.Count(Meld.IsChow))
}

func mustParse(t *testing.T, text string) Meld {
	t.Helper()
	m, err := Parse(text)
	require.NoError(t, err)
	return m
}
