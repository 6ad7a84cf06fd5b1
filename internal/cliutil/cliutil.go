// Package cliutil contains helpers shared by the cmd/ tools.
package cliutil

import "github.com/mattn/go-isatty"

// IsTty reports whether fd refers to an interactive terminal.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
