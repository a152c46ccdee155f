package main

import (
	"fmt"

	"github.com/lox/mahjongg/internal/rule"
)

// RulesCmd lists a ruleset
type RulesCmd struct {
	All bool `help:"List the names of every known ruleset instead"`
}

func (c *RulesCmd) Run(g *Globals) error {
	env, err := g.setup()
	if err != nil {
		return err
	}
	if c.All {
		for _, name := range env.rulesets.Names() {
			fmt.Println(name)
		}
		return nil
	}

	rs := env.ruleset
	fmt.Println(headerStyle.Render(rs.Name))
	if rs.Description != "" {
		fmt.Println(rs.Description)
	}
	fmt.Printf("Limit: %d  Minimum for mah jongg: %d points, %d doubles\n\n",
		rs.Limit, rs.MinMJPoints, rs.MinMJDoubles)

	sections := []struct {
		category rule.Category
		rules    []*rule.Rule
	}{
		{rule.MeldRule, rs.MeldRules},
		{rule.HandRule, rs.HandRules},
		{rule.WinnerRule, rs.WinnerRules},
		{rule.WinningPattern, rs.WinningPatterns},
	}
	for _, s := range sections {
		fmt.Println(categoryStyle.Render(s.category.String()))
		for _, r := range s.rules {
			fmt.Printf("  %s\n", ruleLine(r))
		}
		fmt.Println()
	}
	return nil
}
