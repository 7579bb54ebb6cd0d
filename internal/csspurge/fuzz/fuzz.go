//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"bytes"
	"io/ioutil"
	"log"

	"github.com/daaku/tailpurge/internal/csspurge"
	"github.com/daaku/tailpurge/internal/selector"
)

var pattern = selector.Build([]string{"a", "sm:px-6", "my-1.5", "w-1/2"})

func Fuzz(b []byte) int {
	l := log.New(ioutil.Discard, "", 0)
	_ = csspurge.Purge(
		pattern,
		l,
		bytes.NewReader(b),
		ioutil.Discard,
	)
	return 0
}
