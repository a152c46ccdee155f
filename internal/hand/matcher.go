package hand

import (
	"sort"

	"github.com/lox/mahjongg/internal/rule"
)

// applyRules matches the rule set against the hand and may clear the won
// flag. Phases run in order: computed rules, meld rules, hand rules and, for
// a won hand, winner rules and the winning pattern. Absolute rules are
// checked after computed rules, after meld and hand rules together and after
// the winning pattern; when one matched, matching ends.
func (c *Content) applyRules() {
	c.usedRules = make([]rule.UsedRule, 0, len(c.computed))
	for _, r := range c.computed {
		c.usedRules = append(c.usedRules, rule.UsedRule{Rule: r})
	}
	if c.hasExclusiveRules() {
		return
	}

	c.applyMeldRules()
	for _, r := range c.ruleset.HandRules {
		if r.AppliesToHand(c) {
			c.usedRules = append(c.usedRules, rule.UsedRule{Rule: r})
		}
	}
	if c.hasExclusiveRules() {
		return
	}
	c.score = c.totalScore()

	if !c.won {
		return
	}

	// Winner rules may provide the doubles a winning pattern requires, so
	// apply them first and take them back if no pattern matches.
	previous := make([]rule.UsedRule, len(c.usedRules))
	copy(previous, c.usedRules)
	c.usedRules = append(c.usedRules, c.matchingWinnerRules()...)
	c.score = c.totalScore()

	patterns := c.MaybeMahjongg()
	if len(patterns) == 0 {
		c.won = false
		c.usedRules = previous
		c.score = c.totalScore()
		return
	}
	if !c.ruleset.StackWinningPatterns {
		patterns = patterns[:1]
	}
	for _, r := range patterns {
		c.usedRules = append(c.usedRules, rule.UsedRule{Rule: r})
	}
	if c.hasExclusiveRules() {
		return
	}
	c.score = c.totalScore()
}

func (c *Content) applyMeldRules() {
	melds := append(c.melds.Clone(), c.bonus...)
	for _, r := range c.ruleset.MeldRules {
		for i := range melds {
			if r.AppliesToMeld(c, melds[i]) {
				m := melds[i]
				c.usedRules = append(c.usedRules, rule.UsedRule{Rule: r, Meld: &m})
			}
		}
	}
}

// matchingWinnerRules returns the winner rules that apply. With a limit, the
// first matching limit hand or absolute rule is returned alone.
func (c *Content) matchingWinnerRules() []rule.UsedRule {
	var matching []rule.UsedRule
	for _, r := range c.ruleset.WinnerRules {
		if !r.AppliesToHand(c) {
			continue
		}
		if (c.ruleset.Limit > 0 && r.Score.Limits >= 1) || r.Absolute {
			return []rule.UsedRule{{Rule: r}}
		}
		matching = append(matching, rule.UsedRule{Rule: r})
	}
	return matching
}

// hasExclusiveRules drops every used rule except the absolute ones, if any,
// and reports whether there were absolute rules.
func (c *Content) hasExclusiveRules() bool {
	var exclusive []rule.UsedRule
	for _, u := range c.usedRules {
		if u.Rule.Absolute {
			exclusive = append(exclusive, u)
		}
	}
	if len(exclusive) == 0 {
		return false
	}
	c.usedRules = exclusive
	c.score = c.totalScore()
	c.won = c.won && len(c.MaybeMahjongg()) > 0
	return true
}

func (c *Content) totalScore() rule.Score {
	var s rule.Score
	for _, u := range c.usedRules {
		s = s.Add(u.Rule.Score)
	}
	return s
}

// MaybeMahjongg returns the winning patterns the hand matches, most valuable
// first. It is empty unless the hand may win and holds exactly one tile more
// than a calling hand. A hand won by robbing a concealed kong only matches
// patterns that allow it.
func (c *Content) MaybeMahjongg() []*rule.Rule {
	if !c.meta.MayWin || c.LenOffset() != 1 {
		return nil
	}
	robbedHidden := c.robbed.IsKnown() && c.robbed.Concealed
	var matching []*rule.Rule
	for _, r := range c.ruleset.WinningPatterns {
		if robbedHidden && !r.MayRobHiddenKong {
			continue
		}
		if r.AppliesToHand(c) {
			matching = append(matching, r)
		}
	}
	limit := c.ruleset.Limit
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Score.Total(limit) > matching[j].Score.Total(limit)
	})
	return matching
}
