package rule

import "fmt"

// Ruleset is an ordered collection of rules plus the limits that govern
// scoring. Hand caches key on the *Ruleset pointer, so a caller that
// changes a rule set's content must clear its caches.
type Ruleset struct {
	Name        string
	Description string
	// Limit caps a hand's total; 0 means no limit.
	Limit int
	// MinMJPoints and MinMJDoubles are the minimum a standard winning hand
	// must reach, counting winner rules.
	MinMJPoints  int
	MinMJDoubles int
	// StackWinningPatterns uses every matching winning pattern instead of
	// only the most valuable one.
	StackWinningPatterns bool

	MeldRules       []*Rule
	HandRules       []*Rule
	WinnerRules     []*Rule
	WinningPatterns []*Rule
	SplitRules      []SplitRule
}

// Add appends r to the collection of its category.
func (rs *Ruleset) Add(r *Rule) {
	switch r.Category {
	case MeldRule:
		rs.MeldRules = append(rs.MeldRules, r)
	case HandRule:
		rs.HandRules = append(rs.HandRules, r)
	case WinnerRule:
		rs.WinnerRules = append(rs.WinnerRules, r)
	case WinningPattern:
		rs.WinningPatterns = append(rs.WinningPatterns, r)
	}
}

// Rules returns every rule in category order.
func (rs *Ruleset) Rules() []*Rule {
	all := make([]*Rule, 0, len(rs.MeldRules)+len(rs.HandRules)+len(rs.WinnerRules)+len(rs.WinningPatterns))
	all = append(all, rs.MeldRules...)
	all = append(all, rs.HandRules...)
	all = append(all, rs.WinnerRules...)
	all = append(all, rs.WinningPatterns...)
	return all
}

// Find returns the rule with the given name.
func (rs *Ruleset) Find(name string) (*Rule, error) {
	for _, r := range rs.Rules() {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("ruleset %s has no rule %q", rs.Name, name)
}

// MaxPairs is the largest number of pairs any winning pattern allows, at
// least one.
func (rs *Ruleset) MaxPairs() int {
	result := 1
	for _, r := range rs.WinningPatterns {
		if r.MaxPairs > result {
			result = r.MaxPairs
		}
	}
	return result
}

// Total returns s.Total with this rule set's limit.
func (rs *Ruleset) Total(s Score) int {
	return s.Total(rs.Limit)
}
