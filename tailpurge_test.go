package main

import (
	"bytes"
	"errors"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daaku/ensure"
)

const stylesheet = `.a {
  color: red;
}

@media (min-width: 640px) {
  .sm\:px-6 {
    padding: 1.5rem;
  }
  .sm\:px-4 {
    padding: 1rem;
  }
}

.b {
  color: blue;
}
`

func newApp(c config) *app {
	return &app{config: c, log: log.New(ioutil.Discard, "", 0)}
}

func write(t *testing.T, path, content string) {
	ensure.Nil(t, os.MkdirAll(filepath.Dir(path), 0o755))
	ensure.Nil(t, ioutil.WriteFile(path, []byte(content), 0o644))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "web", "index.html"), `<div class="a">`)
	write(t, filepath.Join(dir, "web", "app", "page.html"), `<div class="sm:px-6">`)
	write(t, filepath.Join(dir, "tailwind.css"), stylesheet)

	a := newApp(config{
		CSSGlobs:     []string{filepath.Join(dir, "*.css")},
		ContentGlobs: []string{filepath.Join(dir, "web", "**", "*.html")},
	})
	var out bytes.Buffer
	ensure.Nil(t, a.run(&out))
	ensure.DeepEqual(t, out.String(), `.a {
  color: red;
}
@media (min-width: 640px) {
  .sm\:px-6 {
    padding: 1.5rem;
  }
}
`)
}

func TestRunInclude(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "tailwind.css"), stylesheet)

	a := newApp(config{
		CSSGlobs: []string{filepath.Join(dir, "*.css")},
		Include:  []string{"b"},
	})
	var out bytes.Buffer
	ensure.Nil(t, a.run(&out))
	ensure.DeepEqual(t, out.String(), ".b {\n  color: blue;\n}\n")
}

func TestRunMinifyToFile(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "index.html"), `<div class="a b">`)
	write(t, filepath.Join(dir, "tailwind.css"), stylesheet)
	output := filepath.Join(dir, "out.css")

	a := newApp(config{
		CSSGlobs:     []string{filepath.Join(dir, "*.css")},
		ContentGlobs: []string{filepath.Join(dir, "*.html")},
		Output:       output,
		Minify:       true,
	})
	var out bytes.Buffer
	ensure.Nil(t, a.run(&out))
	ensure.DeepEqual(t, out.Len(), 0)
	written, err := ioutil.ReadFile(output)
	ensure.Nil(t, err)
	ensure.DeepEqual(t, string(written), ".a{color:red}.b{color:blue}")
}

func TestRunMultipleStylesheets(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "1.css"), ".a {\n  x: y;\n}\n")
	write(t, filepath.Join(dir, "2.css"), ".a {\n  z: w;\n}\n")

	a := newApp(config{
		CSSGlobs: []string{filepath.Join(dir, "1.css"), filepath.Join(dir, "2.css")},
		Include:  []string{"a"},
	})
	var out bytes.Buffer
	ensure.Nil(t, a.run(&out))
	ensure.DeepEqual(t, out.String(), ".a {\n  x: y;\n}\n.a {\n  z: w;\n}\n")
}

func TestRunVerboseLogsExcluded(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "tailwind.css"), ".b {\n  x: y;\n}\n")

	var logged bytes.Buffer
	a := newApp(config{
		CSSGlobs: []string{filepath.Join(dir, "*.css")},
		Verbose:  true,
	})
	a.log = log.New(&logged, "", 0)
	ensure.Nil(t, a.run(ioutil.Discard))
	ensure.True(t, strings.Contains(logged.String(), "Excluding selector: .b\n"), logged.String())
	ensure.True(t, strings.Contains(logged.String(), "Kept 0 of 1 rulesets"), logged.String())
}

func TestRunBadOutput(t *testing.T) {
	dir := t.TempDir()
	a := newApp(config{
		Output: filepath.Join(dir, "missing", "out.css"),
	})
	err := a.run(ioutil.Discard)
	ensure.True(t, errors.Is(err, os.ErrNotExist))
}
