package jxtmpl

import "strings"

const eofRune = -1

// mark is a saved cursor position.
type mark struct {
	pos    int
	line   int
	column int
}

// cursor walks the decoded input one rune at a time, keeping the
// 1-based line and column of the next rune and of the last one read.
type cursor struct {
	src        []rune
	pos        int
	line       int
	column     int
	lastLine   int
	lastColumn int
}

func (c *cursor) reset(src []rune) {
	c.src = src
	c.pos = 0
	c.line = 1
	c.column = 1
	c.lastLine = 1
	c.lastColumn = 1
}

func (c *cursor) done() bool {
	return c.pos >= len(c.src)
}

// peek returns the rune n positions ahead, or eofRune.
func (c *cursor) peek(n int) rune {
	if i := c.pos + n; i < len(c.src) {
		return c.src[i]
	}
	return eofRune
}

func (c *cursor) hasPrefix(s string) bool {
	i := 0
	for _, r := range s {
		if c.peek(i) != r {
			return false
		}
		i++
	}
	return true
}

func (c *cursor) advance(n int) {
	for ; n > 0 && c.pos < len(c.src); n-- {
		c.lastLine = c.line
		c.lastColumn = c.column
		if c.src[c.pos] == '\n' {
			c.line++
			c.column = 1
		} else {
			c.column++
		}
		c.pos++
	}
}

func (c *cursor) mark() mark {
	return mark{pos: c.pos, line: c.line, column: c.column}
}

func (c *cursor) seek(m mark) {
	c.pos = m.pos
	c.line = m.line
	c.column = m.column
	c.lastLine = m.line
	c.lastColumn = m.column
}

// lineText returns the contents of the given 1-based line, without the
// line terminator.
func (c *cursor) lineText(line int) string {
	if line < 1 {
		return ""
	}
	start := 0
	for n := 1; n < line; n++ {
		i := indexRune(c.src, start, '\n')
		if i < 0 {
			return ""
		}
		start = i + 1
	}
	end := indexRune(c.src, start, '\n')
	if end < 0 {
		end = len(c.src)
	}
	return strings.TrimRight(string(c.src[start:end]), "\r")
}

func indexRune(src []rune, from int, r rune) int {
	for i := from; i < len(src); i++ {
		if src[i] == r {
			return i
		}
	}
	return -1
}
