package event

import (
	"io"
	"strings"
)

const indentUnit = "  "

// Format writes one line per event. Branch headers and bodies are
// indented under the construct they belong to.
func Format(w io.Writer, events []Event) error {
	return format(w, events, 0)
}

func format(w io.Writer, events []Event, depth int) error {
	for _, ev := range events {
		if err := writeLine(w, ev.String(), depth); err != nil {
			return err
		}
		switch ev := ev.(type) {
		case Conditional:
			for _, b := range ev.Branches {
				if err := writeLine(w, b.String(), depth+1); err != nil {
					return err
				}
				if err := format(w, b.Body, depth+2); err != nil {
					return err
				}
			}
		case ForEach:
			if err := format(w, ev.Body, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLine(w io.Writer, s string, depth int) error {
	_, err := io.WriteString(w, strings.Repeat(indentUnit, depth)+s+"\n")
	return err
}
