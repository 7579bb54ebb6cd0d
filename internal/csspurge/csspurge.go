// Package csspurge purges rules that don't reference a kept class name from a
// generated utility stylesheet. It works one statement at a time, without a
// CSS parser, and keeps the text of the rules it retains.
package csspurge

import (
	"io"
	"io/ioutil"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/daaku/tailpurge/internal/classname"
	"github.com/daaku/tailpurge/internal/pa"
	"github.com/daaku/tailpurge/internal/selector"
	"github.com/daaku/tailpurge/internal/statement"
)

var (
	blockStartRe = regexp.MustCompile(`\{\s*$`)
	blockEndRe   = regexp.MustCompile(`^\s*\}`)
	atRuleRe     = regexp.MustCompile(`^\s*@`)
	oneLineRe    = regexp.MustCompile(`^[^{}]*\{[^{}]*\}\s*$`)
)

// Purge copies the stylesheet read from r to w, leaving out every rule whose
// selectors don't match p and every block left empty as a result. Excluded
// selectors are logged to l, which may be nil.
func Purge(p *selector.Pattern, l *log.Logger, r io.Reader, w io.Writer) error {
	if l == nil {
		l = log.New(ioutil.Discard, "", 0)
	}
	c := purger{
		pattern: p,
		log:     l,
		in:      statement.NewScanner(r),
		out:     &pa.Writer{W: w},
	}
	return pa.Run(c.outer)
}

// PurgeString purges stylesheet keeping the rules that reference a class
// name found in any of the sources.
func PurgeString(stylesheet string, keepFrom ...io.Reader) (string, error) {
	names, err := classname.CollectFrom(keepFrom...)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	err = Purge(selector.Build(names), nil, strings.NewReader(stylesheet), &out)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// opener is a block opener waiting for content to prove the block is used.
// A rejected opener suppresses everything until its block closes.
type opener struct {
	text     string
	rejected bool
}

type purger struct {
	pattern  *selector.Pattern
	log      *log.Logger
	in       *statement.Scanner
	out      *pa.Writer
	line     string
	pending  []opener
	rejected int
}

func (c *purger) outer() pa.Next {
	if !c.in.Scan() {
		return c.end
	}
	c.line = statement.StripComments(c.in.Text())
	switch {
	case blockStartRe.MatchString(c.line):
		return c.beginBlock
	case len(c.pending) > 0 && blockEndRe.MatchString(c.line):
		return c.endBlock
	case oneLineRe.MatchString(c.line):
		return c.rule
	default:
		return c.content
	}
}

func (c *purger) end() pa.Next {
	pa.Check(c.in.Err())
	return nil
}

func (c *purger) beginBlock() pa.Next {
	o := c.classify(c.line)
	if o.rejected {
		c.rejected++
	}
	c.pending = append(c.pending, o)
	return c.outer
}

// endBlock is reached only for blocks that never got content, since content
// flushes all pending openers. Dropping the opener drops the block.
func (c *purger) endBlock() pa.Next {
	last := len(c.pending) - 1
	if c.pending[last].rejected {
		c.rejected--
	}
	c.pending = c.pending[:last]
	return c.outer
}

func (c *purger) content() pa.Next {
	if c.rejected > 0 {
		return c.outer
	}
	c.flush()
	c.out.WriteString(c.line)
	return c.outer
}

// rule handles a complete rule on a single line.
func (c *purger) rule() pa.Next {
	if c.rejected > 0 {
		return c.outer
	}
	brace := strings.IndexByte(c.line, '{')
	open, rest := c.line[:brace+1], c.line[brace+1:]
	if strings.TrimSpace(rest[:strings.IndexByte(rest, '}')]) == "" {
		return c.outer
	}
	o := c.classify(open)
	if o.rejected {
		return c.outer
	}
	c.flush()
	if o.text == open {
		c.out.WriteString(c.line)
	} else {
		c.out.WriteString(strings.TrimSuffix(o.text, "\n"))
		c.out.WriteString(rest)
	}
	return c.outer
}

// flush writes the pending openers, now known to have content.
func (c *purger) flush() {
	for _, o := range c.pending {
		c.out.WriteString(o.text)
	}
	c.pending = c.pending[:0]
}

func (c *purger) classify(line string) opener {
	if atRuleRe.MatchString(line) {
		return opener{text: line}
	}

	sel := blockStartRe.ReplaceAllString(line, "")
	tail := line[len(sel):]
	if !strings.Contains(sel, ",") {
		if c.pattern.MatchesAnywhere(sel) {
			return opener{text: line}
		}
		c.log.Printf("Excluding selector: %s\n", strings.TrimSpace(sel))
		return opener{rejected: true}
	}

	// an unterminated fragment merged into an at-rule opener is dropped
	alts := selector.Split(sel)
	for i := 1; i < len(alts); i++ {
		if strings.HasPrefix(strings.TrimLeftFunc(alts[i], unicode.IsSpace), "@") {
			at := strings.TrimLeftFunc(strings.Join(alts[i:], ","), unicode.IsSpace)
			return opener{text: indent(line) + at + tail}
		}
	}

	purged := c.pattern.FilterList(sel)
	if purged == "" {
		c.log.Printf("Excluding selector: %s\n", strings.TrimSpace(sel))
		return opener{rejected: true}
	}
	if purged == strings.TrimRightFunc(sel, unicode.IsSpace) {
		return opener{text: line}
	}
	return opener{text: purged + " {\n"}
}

func indent(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
