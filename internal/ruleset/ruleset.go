// Package ruleset loads rule sets from HCL.
//
// A file holds any number of ruleset blocks. A ruleset may extend one defined
// earlier in the same file or in the base set, inheriting its settings and
// rules; a rule block with an inherited name replaces the inherited rule.
//
//	ruleset "house" {
//	  extends = "classical"
//	  limit   = 1000
//
//	  winning_pattern "Seven Pairs" {
//	    function  = "SevenPairs"
//	    points    = 20
//	    doubles   = 2
//	    max_pairs = 7
//	  }
//	}
package ruleset

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/mahjongg/internal/rule"
	"github.com/lox/mahjongg/internal/rulecode"
)

// DefaultName is the rule set used when none is configured.
const DefaultName = "classical"

//go:embed rulesets.hcl
var builtin []byte

// File is the HCL document.
type File struct {
	Rulesets []Block `hcl:"ruleset,block"`
}

// Block is one ruleset definition.
type Block struct {
	Name                 string   `hcl:"name,label"`
	Extends              string   `hcl:"extends,optional"`
	Description          string   `hcl:"description,optional"`
	Limit                *int     `hcl:"limit,optional"`
	MinMJPoints          *int     `hcl:"min_mj_points,optional"`
	MinMJDoubles         *int     `hcl:"min_mj_doubles,optional"`
	StackWinningPatterns *bool    `hcl:"stack_winning_patterns,optional"`
	SplitRules           []string `hcl:"split_rules,optional"`
	// Without drops inherited rules by name.
	Without []string `hcl:"without,optional"`

	MeldRules       []RuleBlock `hcl:"meld_rule,block"`
	HandRules       []RuleBlock `hcl:"hand_rule,block"`
	WinnerRules     []RuleBlock `hcl:"winner_rule,block"`
	WinningPatterns []RuleBlock `hcl:"winning_pattern,block"`
}

// RuleBlock is one rule definition.
type RuleBlock struct {
	Name             string  `hcl:"name,label"`
	Function         string  `hcl:"function"`
	Points           int     `hcl:"points,optional"`
	Doubles          int     `hcl:"doubles,optional"`
	Limits           float64 `hcl:"limits,optional"`
	Absolute         bool    `hcl:"absolute,optional"`
	MayRobHiddenKong bool    `hcl:"may_rob_hidden_kong,optional"`
	MaxPairs         int     `hcl:"max_pairs,optional"`
	Debug            bool    `hcl:"debug,optional"`
}

// Set is a collection of named rule sets.
type Set struct {
	rulesets map[string]*rule.Ruleset
}

// Default returns the built-in rule sets.
func Default() (*Set, error) {
	return Parse(builtin, "rulesets.hcl", nil)
}

// Load reads rule sets from an HCL file. Rule sets in base can be extended
// and are part of the result unless redefined.
func Load(filename string, base *Set) (*Set, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var doc File
	diags = gohcl.DecodeBody(file.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return build(doc, base)
}

// Parse reads rule sets from HCL source.
func Parse(src []byte, filename string, base *Set) (*Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var doc File
	diags = gohcl.DecodeBody(file.Body, nil, &doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return build(doc, base)
}

// Get returns the rule set with the given name.
func (s *Set) Get(name string) (*rule.Ruleset, error) {
	rs, ok := s.rulesets[name]
	if !ok {
		return nil, fmt.Errorf("unknown ruleset %q", name)
	}
	return rs, nil
}

// Names returns the rule set names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.rulesets))
	for name := range s.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func build(doc File, base *Set) (*Set, error) {
	set := &Set{rulesets: make(map[string]*rule.Ruleset)}
	if base != nil {
		for name, rs := range base.rulesets {
			set.rulesets[name] = rs
		}
	}

	lib := rulecode.Library()
	defined := make(map[string]bool)
	for _, block := range doc.Rulesets {
		if defined[block.Name] {
			return nil, fmt.Errorf("ruleset %q defined twice", block.Name)
		}
		defined[block.Name] = true

		var parent *rule.Ruleset
		if block.Extends != "" {
			p, ok := set.rulesets[block.Extends]
			if !ok {
				return nil, fmt.Errorf("ruleset %q extends unknown ruleset %q", block.Name, block.Extends)
			}
			parent = p
		}

		rs, err := block.toRuleset(parent, lib)
		if err != nil {
			return nil, err
		}
		if err := Validate(rs); err != nil {
			return nil, err
		}
		set.rulesets[block.Name] = rs
	}
	return set, nil
}

func (b Block) toRuleset(parent *rule.Ruleset, lib *rule.Library) (*rule.Ruleset, error) {
	rs := &rule.Ruleset{Name: b.Name}
	splitNames := rule.DefaultSplitOrder
	if parent != nil {
		rs.Description = parent.Description
		rs.Limit = parent.Limit
		rs.MinMJPoints = parent.MinMJPoints
		rs.MinMJDoubles = parent.MinMJDoubles
		rs.StackWinningPatterns = parent.StackWinningPatterns
		splitNames = nil
		for _, sr := range parent.SplitRules {
			splitNames = append(splitNames, sr.Name)
		}
	}

	if b.Description != "" {
		rs.Description = b.Description
	}
	if b.Limit != nil {
		rs.Limit = *b.Limit
	}
	if b.MinMJPoints != nil {
		rs.MinMJPoints = *b.MinMJPoints
	}
	if b.MinMJDoubles != nil {
		rs.MinMJDoubles = *b.MinMJDoubles
	}
	if b.StackWinningPatterns != nil {
		rs.StackWinningPatterns = *b.StackWinningPatterns
	}
	if len(b.SplitRules) > 0 {
		splitNames = b.SplitRules
	}

	// The pattern fallback must consume every tile.
	hasSingle := false
	for _, name := range splitNames {
		sr, err := rule.SplitRuleByName(name)
		if err != nil {
			return nil, fmt.Errorf("ruleset %q: %w", b.Name, err)
		}
		rs.SplitRules = append(rs.SplitRules, sr)
		hasSingle = hasSingle || name == "single"
	}
	if !hasSingle {
		sr, _ := rule.SplitRuleByName("single")
		rs.SplitRules = append(rs.SplitRules, sr)
	}

	own := make(map[string]*rule.Rule)
	var added []*rule.Rule
	for _, group := range []struct {
		category rule.Category
		blocks   []RuleBlock
	}{
		{rule.MeldRule, b.MeldRules},
		{rule.HandRule, b.HandRules},
		{rule.WinnerRule, b.WinnerRules},
		{rule.WinningPattern, b.WinningPatterns},
	} {
		for _, rb := range group.blocks {
			if _, dup := own[rb.Name]; dup {
				return nil, fmt.Errorf("ruleset %q: rule %q defined twice", b.Name, rb.Name)
			}
			r := rb.toRule(group.category)
			if err := lib.Bind(r); err != nil {
				return nil, fmt.Errorf("ruleset %q: %w", b.Name, err)
			}
			own[rb.Name] = r
			added = append(added, r)
		}
	}

	without := make(map[string]bool, len(b.Without))
	for _, name := range b.Without {
		without[name] = true
	}
	if parent != nil {
		for _, r := range parent.Rules() {
			if without[r.Name] {
				delete(without, r.Name)
				continue
			}
			if replacement, ok := own[r.Name]; ok {
				rs.Add(replacement)
				delete(own, r.Name)
				continue
			}
			rs.Add(r)
		}
	}
	if len(without) > 0 {
		unknown := make([]string, 0, len(without))
		for name := range without {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("ruleset %q: cannot remove unknown rules %q", b.Name, unknown)
	}
	for _, r := range added {
		if _, pending := own[r.Name]; pending {
			rs.Add(r)
		}
	}
	return rs, nil
}

func (rb RuleBlock) toRule(category rule.Category) *rule.Rule {
	return &rule.Rule{
		Name:     rb.Name,
		Category: category,
		Function: rb.Function,
		Score: rule.Score{
			Points:  rb.Points,
			Doubles: rb.Doubles,
			Limits:  rb.Limits,
		},
		Absolute:         rb.Absolute,
		MayRobHiddenKong: rb.MayRobHiddenKong,
		MaxPairs:         rb.MaxPairs,
		Debug:            rb.Debug,
	}
}

// Validate checks a rule set for values the engine cannot work with.
func Validate(rs *rule.Ruleset) error {
	if rs.Limit < 0 {
		return fmt.Errorf("ruleset %q: invalid limit: %d", rs.Name, rs.Limit)
	}
	if rs.MinMJPoints < 0 || rs.MinMJDoubles < 0 {
		return fmt.Errorf("ruleset %q: minimum mah jongg score cannot be negative", rs.Name)
	}
	if len(rs.WinningPatterns) == 0 {
		return fmt.Errorf("ruleset %q has no winning patterns", rs.Name)
	}
	for _, r := range rs.Rules() {
		if r.MaxPairs < 0 {
			return fmt.Errorf("rule %q: invalid max_pairs: %d", r.Name, r.MaxPairs)
		}
		if r.Score.Limits > 0 && rs.Limit == 0 {
			return fmt.Errorf("rule %q scores limits but ruleset %q has no limit", r.Name, rs.Name)
		}
	}
	return nil
}
