//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"bytes"

	"github.com/daaku/tailpurge/internal/cssstats"
)

func Fuzz(b []byte) int {
	_, _ = cssstats.Count(bytes.NewReader(b))
	return 0
}
