package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/daaku/tailpurge/internal/classname"
	"github.com/daaku/tailpurge/internal/csspurge"
	"github.com/daaku/tailpurge/internal/cssstats"
	"github.com/daaku/tailpurge/internal/discover"
	"github.com/daaku/tailpurge/internal/selector"
	"github.com/facebookgo/errgroup"
	"github.com/jpillora/opts"
	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

type config struct {
	CSSGlobs     []string `koanf:"css" opts:"name=css,short=c,help=Globs targeting CSS files to purge"`
	ContentGlobs []string `koanf:"content" opts:"name=content,short=s,help=Globs targeting files to collect class names from"`
	Include      []string `koanf:"include" opts:"short=i,help=Class names to always keep"`
	Output       string   `koanf:"output" opts:"short=o,help=Write the purged CSS here instead of stdout"`
	Minify       bool     `koanf:"minify" opts:"short=m,help=Minify the purged CSS"`
	NoGitignore  bool     `koanf:"no-gitignore" opts:"name=no-gitignore,help=Also scan content files ignored by .gitignore"`
	Verbose      bool     `koanf:"verbose" opts:"help=Log every excluded selector"`
}

type app struct {
	config

	namesMu sync.Mutex
	names   classname.Set

	log *log.Logger
}

func (a *app) contentFileProcessor(filename string) error {
	a.log.Printf("Processing content file: %s\n", filename)
	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	s, err := classname.Extract(bufio.NewReader(f))
	if err != nil {
		return errors.WithMessagef(err, "in %s", filename)
	}
	a.namesMu.Lock()
	a.names.Merge(s)
	a.namesMu.Unlock()
	return nil
}

// collect scans the content files concurrently, a few at a time.
func (a *app) collect(filenames []string) error {
	var g errgroup.Group
	sem := make(chan struct{}, runtime.NumCPU())
	g.Add(len(filenames))
	for _, filename := range filenames {
		filename := filename
		sem <- struct{}{}
		go func() {
			defer func() {
				<-sem
				g.Done()
			}()
			if err := a.contentFileProcessor(filename); err != nil {
				g.Error(err)
			}
		}()
	}
	return g.Wait()
}

func (a *app) purgeLog() *log.Logger {
	if a.Verbose {
		return a.log
	}
	return log.New(ioutil.Discard, "", 0)
}

func (a *app) cssFileProcessor(p *selector.Pattern, filename string, w io.Writer) error {
	a.log.Printf("Processing CSS file: %s\n", filename)
	in, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	var out bytes.Buffer
	if err := csspurge.Purge(p, a.purgeLog(), bytes.NewReader(in), &out); err != nil {
		return errors.WithMessagef(err, "in %s", filename)
	}
	a.report(filename, in, out.Bytes())
	_, err = w.Write(out.Bytes())
	return errors.WithStack(err)
}

// report logs how much of a stylesheet survived. Counting is informational,
// so a stylesheet the parser rejects is only logged.
func (a *app) report(filename string, before, after []byte) {
	b, err := cssstats.Count(bytes.NewReader(before))
	if err != nil {
		a.log.Printf("Not counting %s: %v\n", filename, err)
		return
	}
	k, err := cssstats.Count(bytes.NewReader(after))
	if err != nil {
		a.log.Printf("Not counting purged %s: %v\n", filename, err)
		return
	}
	a.log.Printf("Kept %d of %d rulesets from %s\n", k.Rulesets, b.Rulesets, filename)
	if a.Verbose {
		a.log.Printf("Before: %s\n", b)
		a.log.Printf("After: %s\n", k)
	}
}

func (a *app) write(purged []byte, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if a.Minify {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		if err := m.Minify("text/css", bw, bytes.NewReader(purged)); err != nil {
			return errors.WithStack(err)
		}
	} else if _, err := bw.Write(purged); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(bw.Flush())
}

func (a *app) run(stdout io.Writer) error {
	var ignored discover.Ignorer
	if !a.NoGitignore {
		ignored = discover.LoadIgnore(".gitignore")
	}
	content, err := discover.Files(a.ContentGlobs, ignored)
	if err != nil {
		return err
	}
	if err := a.collect(content); err != nil {
		return err
	}
	a.names.Add(a.Include...)
	a.log.Printf("Keeping %d class names from %d files\n", len(a.names.Seen), len(content))
	pattern := selector.Build(a.names.Sorted())

	stylesheets, err := discover.Files(a.CSSGlobs, nil)
	if err != nil {
		return err
	}
	var purged bytes.Buffer
	for _, filename := range stylesheets {
		if err := a.cssFileProcessor(pattern, filename, &purged); err != nil {
			return err
		}
	}

	if a.Output == "" {
		return a.write(purged.Bytes(), stdout)
	}
	f, err := os.Create(a.Output)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := a.write(purged.Bytes(), f); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "unknown"
}

func main() {
	a := &app{
		log: log.New(os.Stderr, ">> ", 0),
	}
	if err := loadConfig(&a.config, configPath()); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
	opts.New(&a.config).Name("tailpurge").Version(version()).Parse()
	if err := a.run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
