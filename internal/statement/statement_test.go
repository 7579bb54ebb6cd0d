package statement

import (
	"errors"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/daaku/ensure"
)

func TestAll(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "rule",
			in:   ".a {\n  color: red;\n}\n",
			out:  []string{".a {\n", "  color: red;\n", "}\n"},
		},
		{
			name: "last line without newline",
			in:   ".a {\n}",
			out:  []string{".a {\n", "}"},
		},
		{
			name: "selector list across lines",
			in:   ".a,\n.b {\n}\n",
			out:  []string{".a,\n.b {\n", "}\n"},
		},
		{
			name: "declaration across lines",
			in:   "  grid-template-columns:\n    1fr\n    2fr;\n",
			out:  []string{"  grid-template-columns:\n    1fr\n    2fr;\n"},
		},
		{
			name: "trailing comment",
			in:   "  color: red; /* brand */\n",
			out:  []string{"  color: red; /* brand */\n"},
		},
		{
			name: "trailing comment and whitespace",
			in:   ".a { /* x */  \n}\n",
			out:  []string{".a { /* x */  \n", "}\n"},
		},
		{
			name: "comment run after terminator",
			in:   "a; /* x */ /* y */\nb;\n",
			out:  []string{"a; /* x */ /* y */\n", "b;\n"},
		},
		{
			name: "blank lines discarded",
			in:   "\n   \n\t\n.a {\n",
			out:  []string{".a {\n"},
		},
		{
			name: "comment lines discarded",
			in:   "/* ! tailwindcss */\n  /* more */  \n.a {\n",
			out:  []string{".a {\n"},
		},
		{
			name: "multi line comment discarded",
			in:   "/*\n * header\n */\n.a {\n",
			out:  []string{".a {\n"},
		},
		{
			name: "unterminated tail dropped",
			in:   ".a {\n}\n.b,\n.c",
			out:  []string{".a {\n", "}\n"},
		},
		{
			name: "empty",
			in:   "",
			out:  nil,
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			out, err := All(strings.NewReader(c.in))
			ensure.Nil(t, err)
			ensure.DeepEqual(t, out, c.out)
		})
	}
}

func TestScannerText(t *testing.T) {
	s := NewScanner(strings.NewReader("a;\n"))
	ensure.True(t, s.Scan())
	ensure.DeepEqual(t, s.Text(), "a;\n")
	ensure.False(t, s.Scan())
	ensure.DeepEqual(t, s.Text(), "")
	ensure.False(t, s.Scan())
	ensure.Nil(t, s.Err())
}

func TestStripComments(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"a;", "a;"},
		{"a; /* x */\n", "a; \n"},
		{"/* x */ .a /* y */ {", " .a  {"},
		{"/* multi\nline */a;", "a;"},
	}
	for _, c := range cases {
		ensure.DeepEqual(t, StripComments(c.in), c.out)
	}
}

func TestReaderError(t *testing.T) {
	f, err := ioutil.TempFile("", "tailpurge-statement-")
	ensure.Nil(t, err)
	f.Close()
	os.Remove(f.Name())
	_, err = All(f)
	ensure.True(t, errors.Is(err, os.ErrClosed))
}
