package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/mahjongg/internal/rule"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	set, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"classical", "house"}, set.Names())

	classical, err := set.Get(DefaultName)
	require.NoError(t, err)
	assert.Equal(t, 500, classical.Limit)
	assert.Equal(t, 1, classical.MaxPairs())
	assert.Len(t, classical.WinningPatterns, 2)
	assert.Len(t, classical.SplitRules, 4)

	house, err := set.Get("house")
	require.NoError(t, err)
	assert.Equal(t, 1000, house.Limit)
	assert.Equal(t, 7, house.MaxPairs())
	assert.Equal(t, len(classical.MeldRules), len(house.MeldRules))
	assert.Len(t, house.HandRules, len(classical.HandRules)+2)

	mj, err := house.Find("Seven Pairs")
	require.NoError(t, err)
	assert.Equal(t, rule.Score{Points: 20, Doubles: 2}, mj.Score)

	_, err = set.Get("missing")
	assert.Error(t, err)
}

func TestParseExtendsAndOverrides(t *testing.T) {
	t.Parallel()
	base, err := Default()
	require.NoError(t, err)

	src := `
ruleset "strict" {
  extends        = "classical"
  min_mj_doubles = 1
  without        = ["Flower", "Season"]

  meld_rule "Pung/Kong of Dragons" {
    function = "DragonPungKong"
    doubles  = 2
  }
}
`
	set, err := Parse([]byte(src), "strict.hcl", base)
	require.NoError(t, err)

	strict, err := set.Get("strict")
	require.NoError(t, err)
	classical, err := set.Get("classical")
	require.NoError(t, err)

	assert.Equal(t, 500, strict.Limit)
	assert.Equal(t, 1, strict.MinMJDoubles)
	assert.Len(t, strict.MeldRules, len(classical.MeldRules)-2)

	_, err = strict.Find("Flower")
	assert.Error(t, err)
	dragons, err := strict.Find("Pung/Kong of Dragons")
	require.NoError(t, err)
	assert.Equal(t, 2, dragons.Score.Doubles)

	original, err := classical.Find("Pung/Kong of Dragons")
	require.NoError(t, err)
	assert.Equal(t, 1, original.Score.Doubles, "parent must be unchanged")
}

func TestParseAppendsSingleSplitRule(t *testing.T) {
	t.Parallel()
	src := `
ruleset "tiny" {
  split_rules = ["pair"]

  winning_pattern "Seven Pairs" {
    function  = "SevenPairs"
    points    = 20
    max_pairs = 7
  }
}
`
	set, err := Parse([]byte(src), "tiny.hcl", nil)
	require.NoError(t, err)
	tiny, err := set.Get("tiny")
	require.NoError(t, err)
	require.Len(t, tiny.SplitRules, 2)
	assert.Equal(t, "pair", tiny.SplitRules[0].Name)
	assert.Equal(t, "single", tiny.SplitRules[1].Name)
	assert.Equal(t, 0, tiny.Limit)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown parent",
			src:  `ruleset "a" { extends = "nope" }`,
			want: "unknown ruleset",
		},
		{
			name: "unknown function",
			src: `ruleset "a" {
  winning_pattern "x" { function = "Nope" }
}`,
			want: "unknown hand function",
		},
		{
			name: "no winning pattern",
			src: `ruleset "a" {
  meld_rule "x" { function = "Flower" }
}`,
			want: "no winning patterns",
		},
		{
			name: "limits without limit",
			src: `ruleset "a" {
  winning_pattern "x" {
    function = "ThirteenOrphans"
    limits   = 1
  }
}`,
			want: "has no limit",
		},
		{
			name: "bad split rule",
			src: `ruleset "a" {
  split_rules = ["kong"]
  winning_pattern "x" { function = "SevenPairs" }
}`,
			want: "unknown split rule",
		},
		{
			name: "duplicate rule",
			src: `ruleset "a" {
  winning_pattern "x" { function = "SevenPairs" }
  hand_rule "x" { function = "AllFlowers" }
}`,
			want: "defined twice",
		},
		{
			name: "remove unknown",
			src: `ruleset "a" {
  without = ["ghost"]
  winning_pattern "x" { function = "SevenPairs" }
}`,
			want: "cannot remove unknown rules",
		},
		{
			name: "syntax",
			src:  `ruleset "a" {`,
			want: "failed to parse HCL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
ruleset "classical" {
  limit = 300
  winning_pattern "Standard Mah Jongg" {
    function = "StandardMahJongg"
    points   = 20
  }
}
`), 0o644))

	base, err := Default()
	require.NoError(t, err)
	set, err := Load(path, base)
	require.NoError(t, err)

	classical, err := set.Get("classical")
	require.NoError(t, err)
	assert.Equal(t, 300, classical.Limit)
	assert.Empty(t, classical.MeldRules)

	house, err := set.Get("house")
	require.NoError(t, err)
	assert.Equal(t, 1000, house.Limit, "base rule sets survive")

	_, err = Load(filepath.Join(dir, "missing.hcl"), nil)
	assert.Error(t, err)
}
