//go:build debug

// Package debug prints parser internals when built with the `debug` tag.
package debug

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
)

const Enabled = true

var logger = log.New(os.Stderr, "|jxtmpl| ", 0)

// Printf prints debug messages. Only available if compiled with "debug" tag
func Printf(f string, args ...any) {
	logger.Printf(f, args...)
}

// Dump prints the structure of v using go-spew.
func Dump(v ...any) {
	spew.Fdump(os.Stderr, v...)
}
