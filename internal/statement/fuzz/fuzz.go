//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"bytes"

	"github.com/daaku/tailpurge/internal/statement"
)

func Fuzz(b []byte) int {
	_, _ = statement.All(bytes.NewReader(b))
	return 0
}
