package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/tile"
)

func TestScoreTotal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		score Score
		limit int
		want  int
	}{
		{name: "points only", score: Score{Points: 20}, limit: 1000, want: 20},
		{name: "doubled", score: Score{Points: 24, Doubles: 3}, limit: 1000, want: 192},
		{name: "capped", score: Score{Points: 100, Doubles: 5}, limit: 1000, want: 1000},
		{name: "no limit", score: Score{Points: 100, Doubles: 5}, want: 3200},
		{name: "limit hand", score: Score{Points: 30, Limits: 1}, limit: 1000, want: 1000},
		{name: "half limit", score: Score{Limits: 0.5}, limit: 1000, want: 500},
		{name: "third limit rounds", score: Score{Limits: 1.0 / 3}, limit: 500, want: 167},
		{name: "stacked limits capped", score: Score{Limits: 2}, limit: 500, want: 500},
		{name: "huge doubles", score: Score{Points: 2, Doubles: 90}, limit: 500, want: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.score.Total(tt.limit))
			assert.Equal(t, tt.want, tt.score.Total(tt.limit), "Total must be deterministic")
		})
	}
}

func TestScoreAddAndString(t *testing.T) {
	t.Parallel()
	s := Score{Points: 20}.Add(Score{Doubles: 1}).Add(Score{Points: 2})
	assert.Equal(t, Score{Points: 22, Doubles: 1}, s)
	assert.Equal(t, "22 points, 1 double", s.String())
	assert.Equal(t, "0 points", Score{}.String())
	assert.Equal(t, "limit hand", Score{Limits: 1}.String())
	assert.True(t, Score{}.IsZero())
}

func TestSplit(t *testing.T) {
	t.Parallel()
	var rules []SplitRule
	for _, name := range DefaultSplitOrder {
		r, err := SplitRuleByName(name)
		require.NoError(t, err)
		rules = append(rules, r)
	}

	tiles := tileList(t, "S1S1S2S2S3S3S4S4S5S5S6S6S7S7S8S8")
	groups, rest := Split(rules, tiles)
	assert.Empty(t, rest)
	covered := 0
	for _, g := range groups {
		assert.Contains(t, []int{2, 3}, len(g))
		covered += len(g)
	}
	assert.Equal(t, 16, covered)

	groups, rest = Split(rules[:1], tileList(t, "DrDrDrWe"))
	require.Len(t, groups, 1)
	assert.Equal(t, "DrDrDr", groups[0].Code(true))
	assert.Equal(t, "We", rest.Code(true))

	_, err := SplitRuleByName("kong")
	assert.Error(t, err)
}

func TestLibraryBind(t *testing.T) {
	t.Parallel()
	lib := NewLibrary()
	lib.RegisterMeld("Any", func(Hand, meld.Meld) bool { return true })
	lib.RegisterHand("Never", func(Hand) bool { return false })

	r := &Rule{Name: "any meld", Category: MeldRule, Function: "Any"}
	require.NoError(t, lib.Bind(r))
	assert.True(t, r.AppliesToMeld(nil, meld.MustNew([]tile.Tile{tile.MustParse("S1")}, meld.Concealed)))
	assert.False(t, r.AppliesToHand(nil))

	bad := &Rule{Name: "wrong", Category: HandRule, Function: "Any"}
	assert.Error(t, lib.Bind(bad))
}

func TestRulesetMaxPairs(t *testing.T) {
	t.Parallel()
	rs := &Ruleset{Name: "test"}
	assert.Equal(t, 1, rs.MaxPairs())
	rs.Add(&Rule{Name: "Seven Pairs", Category: WinningPattern, MaxPairs: 7})
	rs.Add(&Rule{Name: "Dragons", Category: MeldRule})
	assert.Equal(t, 7, rs.MaxPairs())
	assert.Len(t, rs.Rules(), 2)

	r, err := rs.Find("Dragons")
	require.NoError(t, err)
	assert.Equal(t, MeldRule, r.Category)
	_, err = rs.Find("missing")
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	t.Parallel()
	r := &Rule{Name: "Pung of Dragons", Score: Score{Doubles: 1}}
	m := meld.MustNew([]tile.Tile{tile.MustParse("Dr"), tile.MustParse("Dr"), tile.MustParse("Dr")}, meld.Exposed)
	assert.Equal(t, "Pung of Dragons drdrdr: 1 double", UsedRule{Rule: r, Meld: &m}.Explain())
	assert.Equal(t, "Pung of Dragons: 1 double", UsedRule{Rule: r}.Explain())
}

func tileList(t *testing.T, codes string) tile.List {
	t.Helper()
	placed, err := tile.ParseList(codes)
	require.NoError(t, err)
	out := make(tile.List, len(placed))
	for i, p := range placed {
		out[i] = p.Tile
	}
	return out
}
