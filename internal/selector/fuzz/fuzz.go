//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"github.com/daaku/tailpurge/internal/selector"
)

var pattern = selector.Build([]string{"a", "sm:px-6", "my-1.5", "w-1/2"})

func Fuzz(b []byte) int {
	s := string(b)
	_ = pattern.MatchesAnywhere(s)
	_ = pattern.FilterList(s)
	return 0
}
