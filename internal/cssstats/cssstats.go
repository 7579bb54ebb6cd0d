// Package cssstats counts the rules in a stylesheet, for reporting how much
// purging removed.
package cssstats

import (
	"fmt"
	"io"

	"github.com/daaku/tailpurge/internal/pa"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type Stats struct {
	Rulesets     int
	Selectors    int
	Declarations int
	AtRules      int
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d rulesets, %d selectors, %d declarations, %d at-rules",
		s.Rulesets, s.Selectors, s.Declarations, s.AtRules)
}

type counter struct {
	parser *css.Parser
	stats  Stats
}

// Count parses the stylesheet read from r and counts its parts.
func Count(r io.Reader) (*Stats, error) {
	c := &counter{
		parser: css.NewParser(parse.NewInput(r), false),
	}
	if err := pa.Run(c.outer); err != nil {
		return nil, err
	}
	return &c.stats, nil
}

func (c *counter) error() pa.Next {
	err := c.parser.Err()
	if err == io.EOF {
		return nil
	}
	panic(errors.WithStack(err))
}

func (c *counter) outer() pa.Next {
	gt, _, _ := c.parser.Next()
	switch gt {
	case css.ErrorGrammar:
		return c.error
	case css.QualifiedRuleGrammar:
		c.stats.Selectors++
	case css.BeginRulesetGrammar:
		c.stats.Selectors++
		c.stats.Rulesets++
	case css.DeclarationGrammar, css.CustomPropertyGrammar:
		c.stats.Declarations++
	case css.AtRuleGrammar, css.BeginAtRuleGrammar:
		c.stats.AtRules++
	}
	return c.outer
}
