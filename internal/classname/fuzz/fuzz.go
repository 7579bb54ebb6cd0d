//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"bytes"

	"github.com/daaku/tailpurge/internal/classname"
)

func Fuzz(b []byte) int {
	_, _ = classname.Extract(bytes.NewReader(b))
	return 0
}
