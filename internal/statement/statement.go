// Package statement reassembles lines of CSS text into complete statements: a
// block opener ending in "{", a closer ending in "}" or a declaration ending
// in ";". Lines without a terminator are joined with the lines that follow
// until one is found.
package statement

import (
	"bufio"
	"io"
	"regexp"

	"github.com/pkg/errors"
)

const comment = `/\*(?s:.*?)\*/`

var (
	commentRe = regexp.MustCompile(comment)

	// A terminator may be followed by whitespace and a single block comment.
	terminatorRe = regexp.MustCompile(`[{};]\s*(?:` + comment + `)?\s*$`)

	// Lines with nothing but whitespace and a comment carry no statement.
	discardableRe = regexp.MustCompile(`^\s*(?:` + comment + `)?\s*$`)
)

// StripComments removes block comments from s.
func StripComments(s string) string {
	return commentRe.ReplaceAllString(s, "")
}

// Scanner yields the statements of the text read from its reader, one per
// call to Scan. Statements keep the text of the lines they are made of,
// including line endings. A statement still missing its terminator when the
// input ends is dropped.
type Scanner struct {
	r       *bufio.Reader
	pending string
	text    string
	err     error
	done    bool
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{r: bufio.NewReader(r)}
}

// Scan advances to the next statement. It returns false at the end of the
// input or on a read error.
func (s *Scanner) Scan() bool {
	for !s.done {
		line, err := s.r.ReadString('\n')
		if err != nil {
			s.done = true
			if err != io.EOF {
				s.err = errors.WithStack(err)
				return false
			}
			if line == "" {
				break
			}
		}

		if s.pending != "" {
			line = s.pending + line
			s.pending = ""
		}

		if terminatorRe.MatchString(line) {
			s.text = line
			return true
		}
		if !discardableRe.MatchString(line) {
			s.pending = line
		}
	}
	s.text = ""
	return false
}

// Text returns the most recent statement.
func (s *Scanner) Text() string {
	return s.text
}

// Err returns the first non EOF error encountered while reading.
func (s *Scanner) Err() error {
	return s.err
}

// All returns every statement in r.
func All(r io.Reader) ([]string, error) {
	var all []string
	s := NewScanner(r)
	for s.Scan() {
		all = append(all, s.Text())
	}
	return all, s.Err()
}
