package jxtmpl

import (
	"strings"
)

// TokenSet is a set of token kinds. The zero value is the empty set.
// Sets are values: Add and Union return new sets.
type TokenSet uint64

func NewTokenSet(kinds ...TokenKind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s TokenSet) Add(k TokenKind) TokenSet {
	if k < 0 || k >= tokenKindMax {
		return s
	}
	return s | 1<<uint(k)
}

func (s TokenSet) Has(k TokenKind) bool {
	if k < 0 || k >= tokenKindMax {
		return false
	}
	return s&(1<<uint(k)) != 0
}

func (s TokenSet) Union(o TokenSet) TokenSet {
	return s | o
}

func (s TokenSet) Len() int {
	var n int
	for k := range tokenKindMax {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// Kinds lists the members in declaration order.
func (s TokenSet) Kinds() []TokenKind {
	var kinds []TokenKind
	for k := range tokenKindMax {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s TokenSet) String() string {
	var sb strings.Builder
	for i, k := range s.Kinds() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k.Image())
	}
	return sb.String()
}
