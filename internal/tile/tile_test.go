package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlaced(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input     string
		want      Tile
		concealed bool
		wantErr   bool
	}{
		{input: "S5", want: Tile{Stone, '5'}, concealed: true},
		{input: "b1", want: Tile{Bamboo, '1'}},
		{input: "C9", want: Tile{Character, '9'}, concealed: true},
		{input: "Dr", want: Tile{Dragon, 'r'}, concealed: true},
		{input: "we", want: Tile{WindGroup, 'e'}},
		{input: "fs", want: Tile{Flower, 's'}},
		{input: "Yn", want: Tile{Season, 'n'}, concealed: true},
		{input: "xx", want: Unknown},
		{input: "S0", wantErr: true},
		{input: "Dx", wantErr: true},
		{input: "Q1", wantErr: true},
		{input: "S", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePlaced(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Tile)
			assert.Equal(t, tt.concealed, got.Concealed)
		})
	}
}

func TestCodeRoundTrip(t *testing.T) {
	t.Parallel()
	for _, tl := range Playable() {
		for _, concealed := range []bool{true, false} {
			p, err := ParsePlaced(tl.Code(concealed))
			require.NoError(t, err)
			assert.Equal(t, tl, p.Tile)
			assert.Equal(t, concealed, p.Concealed)
		}
	}
}

func TestPlayableCount(t *testing.T) {
	t.Parallel()
	assert.Len(t, Playable(), 34)
}

func TestClassification(t *testing.T) {
	t.Parallel()
	assert.True(t, MustParse("S1").IsTerminal())
	assert.True(t, MustParse("S1").IsMajor())
	assert.False(t, MustParse("S5").IsMajor())
	assert.True(t, MustParse("S5").IsMinor())
	assert.True(t, MustParse("Dg").IsHonour())
	assert.True(t, MustParse("Dg").IsMajor())
	assert.False(t, MustParse("Dg").IsMinor())
	assert.True(t, MustParse("fe").IsBonus())
	assert.Equal(t, East, MustParse("fe").Wind())
	assert.Equal(t, North, MustParse("Wn").Wind())
}

func TestNext(t *testing.T) {
	t.Parallel()
	n, ok := MustParse("B7").Next(2)
	require.True(t, ok)
	assert.Equal(t, MustParse("B9"), n)

	_, ok = MustParse("B8").Next(2)
	assert.False(t, ok)

	_, ok = MustParse("Db").Next(1)
	assert.False(t, ok)
}

func TestListSort(t *testing.T) {
	t.Parallel()
	l := List{MustParse("Dr"), MustParse("S3"), MustParse("We"), MustParse("S1"), MustParse("B2")}
	l.Sort()
	assert.Equal(t, "S1S3B2WeDr", l.Code(true))
	assert.Equal(t, 1, l.Count(MustParse("We")))
}

func TestParseList(t *testing.T) {
	t.Parallel()
	tiles, err := ParseList("S1s2Dr")
	require.NoError(t, err)
	require.Len(t, tiles, 3)
	assert.True(t, tiles[0].Concealed)
	assert.False(t, tiles[1].Concealed)

	_, err = ParseList("S1S")
	assert.Error(t, err)
}

func TestSourceFromChar(t *testing.T) {
	t.Parallel()
	for _, c := range []byte(".wdzZek1") {
		s, err := SourceFromChar(c)
		require.NoError(t, err)
		assert.Equal(t, c, s.Char())
	}
	_, err := SourceFromChar('q')
	assert.Error(t, err)

	assert.True(t, Discard.IsDiscarded())
	assert.True(t, DeadWall.IsSelfDrawn())
	assert.False(t, RobbedKong.IsSelfDrawn())
}
