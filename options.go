package jxtmpl

import (
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identEncoding struct{}
type identHandler struct{}
type identHTMLEntities struct{}
type identPublicID struct{}
type identResolver struct{}
type identStrictNesting struct{}
type identSystemID struct{}

// ParseOption configures a Parser.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

// WithHandler makes the parser stream events to h instead of building
// the default document tree.
func WithHandler(h sink.Handler) ParseOption {
	return &parseOption{option.New(identHandler{}, h)}
}

// WithEncoding names the charset of the input. Without it the byte
// order mark decides, and UTF-8 is assumed when there is none.
func WithEncoding(v string) ParseOption {
	return &parseOption{option.New(identEncoding{}, v)}
}

// WithHTMLEntities allows every HTML5 named character reference that
// maps to a single code point, on top of the five predefined ones.
func WithHTMLEntities(v bool) ParseOption {
	return &parseOption{option.New(identHTMLEntities{}, v)}
}

// WithStrictNesting requires close tags to match the innermost open
// element, and every template body to close the elements it opened.
func WithStrictNesting(v bool) ParseOption {
	return &parseOption{option.New(identStrictNesting{}, v)}
}

// WithResolver sets how a Source without a Reader is opened.
func WithResolver(r Resolver) ParseOption {
	return &parseOption{option.New(identResolver{}, r)}
}

// WithPublicID sets the public identifier reported in errors and by
// the document locator.
func WithPublicID(v string) ParseOption {
	return &parseOption{option.New(identPublicID{}, v)}
}

// WithSystemID sets the system identifier reported in errors and by
// the document locator.
func WithSystemID(v string) ParseOption {
	return &parseOption{option.New(identSystemID{}, v)}
}
