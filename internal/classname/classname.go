// Package classname collects tokens shaped like class names from arbitrary
// text. There is no markup awareness: tag names, attribute names and words
// from prose are collected too. Keeping extra names only keeps extra rules,
// missing a name would drop a rule that is in use.
package classname

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/facebookgo/errgroup"
	"github.com/pkg/errors"
)

// maxTokenSize bounds a single run of class name bytes. Long base64 payloads
// are the usual offenders.
const maxTokenSize = 16 << 20

// Set is a set of class names.
type Set struct {
	Seen map[string]struct{}
}

// Add adds names to the set.
func (s *Set) Add(names ...string) {
	if len(names) > 0 && s.Seen == nil {
		s.Seen = make(map[string]struct{})
	}
	for _, n := range names {
		s.Seen[n] = struct{}{}
	}
}

func (s *Set) Merge(other *Set) {
	if len(other.Seen) > 0 && s.Seen == nil {
		s.Seen = make(map[string]struct{})
	}
	for k := range other.Seen {
		s.Seen[k] = struct{}{}
	}
}

// Sorted returns the names in the set in ascending order.
func (s *Set) Sorted() []string {
	names := make([]string, 0, len(s.Seen))
	for k := range s.Seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// A token starts with a letter, digit, underscore or hyphen.
func isLeadByte(b byte) bool {
	return ('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9') ||
		b == '_' || b == '-'
}

// After the first byte variant separators, fractions and escapes are allowed.
func isNameByte(b byte) bool {
	return isLeadByte(b) || b == ':' || b == '.' || b == '/' || b == '\\'
}

func scanClassNames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip until something that can start a name.
	start := 0
	for start < len(data) && !isLeadByte(data[start]) {
		start++
	}
	// Scan until the name ends.
	for i := start; i < len(data); i++ {
		if !isNameByte(data[i]) {
			return i + 1, data[start:i], nil
		}
	}
	// If we're at EOF, we may have something collected.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	// Or request more data.
	return start, nil, nil
}

// Extract collects the names found in r.
func Extract(r io.Reader) (*Set, error) {
	s := &Set{Seen: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTokenSize)
	scanner.Split(scanClassNames)
	for scanner.Scan() {
		s.Seen[scanner.Text()] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return s, nil
}

// Collect returns the sorted unique names found in text.
func Collect(text string) []string {
	// reading from a strings.Reader can't fail
	s, _ := Extract(strings.NewReader(text))
	return s.Sorted()
}

// CollectFrom reads every source fully, concurrently, and returns the sorted
// union of the names found in them.
func CollectFrom(sources ...io.Reader) ([]string, error) {
	var (
		g   errgroup.Group
		mu  sync.Mutex
		all Set
	)
	g.Add(len(sources))
	for _, r := range sources {
		r := r
		go func() {
			defer g.Done()
			s, err := Extract(r)
			if err != nil {
				g.Error(err)
				return
			}
			mu.Lock()
			all.Merge(s)
			mu.Unlock()
		}()
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all.Sorted(), nil
}
