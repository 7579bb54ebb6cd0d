// Package pa is panic and recover plumbing for processors written as a chain
// of state functions. Failures deep inside a state function panic with an
// error, and Run turns that back into a returned error.
package pa

import (
	"io"

	"github.com/pkg/errors"
)

// Next is a state function. It returns the next state, or nil when done.
type Next func() Next

// Check panics with err, annotated with a stack, if it is non-nil.
func Check(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}

// Writer writes to W and panics on failure. N counts the bytes written.
type Writer struct {
	W io.Writer
	N int64
}

func (w *Writer) WriteString(s string) {
	n, err := io.WriteString(w.W, s)
	w.N += int64(n)
	Check(err)
}

func (w *Writer) Write(b []byte) {
	n, err := w.W.Write(b)
	w.N += int64(n)
	Check(err)
}

// Run drives n until a state returns nil. A panic with an error value is
// returned as the error, anything else keeps panicking.
func Run(n Next) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(error); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	for n != nil {
		n = n()
	}
	return nil
}
