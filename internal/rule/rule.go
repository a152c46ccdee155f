// Package rule defines scoring rules, rule sets and their scores.
//
// A rule pairs a named predicate with a Score. Predicates are looked up by
// name in a Library when a rule set is built, so rule sets can be described
// in configuration files while the predicate code stays in Go.
package rule

import (
	"fmt"

	"github.com/lox/mahjongg/internal/meld"
	"github.com/lox/mahjongg/internal/tile"
)

// Category says when a rule is matched.
type Category uint8

const (
	MeldRule Category = iota
	HandRule
	WinnerRule
	WinningPattern
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case MeldRule:
		return "meld"
	case HandRule:
		return "hand"
	case WinnerRule:
		return "winner"
	case WinningPattern:
		return "winning pattern"
	default:
		return "unknown"
	}
}

// Hand is the view of an evaluated hand that predicates work on.
type Hand interface {
	// Melds returns all melds except bonus melds.
	Melds() meld.List
	BonusMelds() meld.List
	OwnWind() tile.Wind
	RoundWind() tile.Wind
	LastTile() tile.Placed
	LastMeld() (meld.Meld, bool)
	LastSource() tile.Source
	HasDeclaration(d byte) bool
	Won() bool
	LenOffset() int
	// Score is the score accumulated so far during evaluation.
	Score() Score
	Ruleset() *Ruleset
}

// MeldFunc decides whether a rule applies to one meld of a hand.
type MeldFunc func(h Hand, m meld.Meld) bool

// HandFunc decides whether a rule applies to a whole hand.
type HandFunc func(h Hand) bool

// Rule is a named, scored predicate.
type Rule struct {
	Name     string
	Category Category
	Function string
	Score    Score

	// Absolute discards every other used rule when this one matches.
	Absolute bool
	// MayRobHiddenKong allows a winning pattern to win by robbing a concealed kong.
	MayRobHiddenKong bool
	// MaxPairs raises the number of pairs the splitter may form.
	MaxPairs int
	// Debug appends the hand encoding to explanations.
	Debug bool

	meldFn MeldFunc
	handFn HandFunc
}

// AppliesToMeld reports whether a meld rule matches m.
func (r *Rule) AppliesToMeld(h Hand, m meld.Meld) bool {
	if r.meldFn == nil {
		return false
	}
	return r.meldFn(h, m)
}

// AppliesToHand reports whether a hand-level rule matches h.
func (r *Rule) AppliesToHand(h Hand) bool {
	if r.handFn == nil {
		return false
	}
	return r.handFn(h)
}

// Explain describes the rule and its score.
func (r *Rule) Explain(m *meld.Meld) string {
	if m != nil {
		return fmt.Sprintf("%s %s: %s", r.Name, m, r.Score)
	}
	return fmt.Sprintf("%s: %s", r.Name, r.Score)
}

func (r *Rule) String() string {
	return r.Name
}

// UsedRule records that a rule matched, and against which meld for meld rules.
type UsedRule struct {
	Rule *Rule
	Meld *meld.Meld
}

// Explain describes the used rule.
func (u UsedRule) Explain() string {
	return u.Rule.Explain(u.Meld)
}

// Library maps predicate names to code.
type Library struct {
	melds map[string]MeldFunc
	hands map[string]HandFunc
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		melds: make(map[string]MeldFunc),
		hands: make(map[string]HandFunc),
	}
}

// RegisterMeld adds a meld predicate.
func (l *Library) RegisterMeld(name string, fn MeldFunc) {
	l.melds[name] = fn
}

// RegisterHand adds a hand predicate.
func (l *Library) RegisterHand(name string, fn HandFunc) {
	l.hands[name] = fn
}

// Len returns the number of meld and hand predicates.
func (l *Library) Len() (melds, hands int) {
	return len(l.melds), len(l.hands)
}

// Bind attaches the predicate named by r.Function. Meld rules need a meld
// predicate, every other category a hand predicate.
func (l *Library) Bind(r *Rule) error {
	if r.Category == MeldRule {
		fn, ok := l.melds[r.Function]
		if !ok {
			return fmt.Errorf("rule %q: unknown meld function %q", r.Name, r.Function)
		}
		r.meldFn = fn
		return nil
	}
	fn, ok := l.hands[r.Function]
	if !ok {
		return fmt.Errorf("rule %q: unknown hand function %q", r.Name, r.Function)
	}
	r.handFn = fn
	return nil
}
