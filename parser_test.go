package jxtmpl_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lestrrat-go/jxtmpl"
	"github.com/lestrrat-go/jxtmpl/encoding"
	"github.com/lestrrat-go/jxtmpl/event"
	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/stretchr/testify/require"
)

func parseEvents(t *testing.T, input []byte, options ...jxtmpl.ParseOption) ([]event.Event, error) {
	t.Helper()
	r := event.NewRecorder()
	options = append(options, jxtmpl.WithHandler(r))
	_, err := jxtmpl.NewParser(options...).Parse(context.Background(), input)
	return r.Events(), err
}

func TestParseEvents(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    string
		Options  []jxtmpl.ParseOption
		Expected []event.Event
	}{
		{
			Name:  "self closing element",
			Input: `<foo/>`,
			Expected: []event.Event{
				event.ElementStart{Name: "foo"},
				event.ElementEnd{Name: "foo"},
			},
		},
		{
			Name:  "blanks inside tags",
			Input: "<foo\n  a = 'x'\t/>",
			Expected: []event.Event{
				event.ElementStart{Name: "foo", Attributes: []sink.Attribute{
					{Name: "a", Fragments: []sink.Fragment{{Kind: sink.FragmentText, Text: "x"}}},
				}},
				event.ElementEnd{Name: "foo"},
			},
		},
		{
			Name:  "character references",
			Input: `&#65;&#x41;&lt;`,
			Expected: []event.Event{
				event.Characters{Text: "A"},
				event.Characters{Text: "A"},
				event.Characters{Text: "<"},
			},
		},
		{
			Name:    "html entities",
			Input:   `&copy;&amp;`,
			Options: []jxtmpl.ParseOption{jxtmpl.WithHTMLEntities(true)},
			Expected: []event.Event{
				event.Characters{Text: "©"},
				event.Characters{Text: "&"},
			},
		},
		{
			Name:  "hash that starts no directive",
			Input: `a # b #x`,
			Expected: []event.Event{
				event.Characters{Text: "a # b #x"},
			},
		},
		{
			Name:  "directive keyword followed by a name",
			Input: `<a>#elsewhere #endnote #iffy</a>`,
			Expected: []event.Event{
				event.ElementStart{Name: "a"},
				event.Characters{Text: "#elsewhere #endnote #iffy"},
				event.ElementEnd{Name: "a"},
			},
		},
		{
			Name:  "directive keyword followed by punctuation",
			Input: `#if{x}a#end!`,
			Expected: []event.Event{
				event.Conditional{Branches: []event.Branch{
					{Condition: "x", Body: []event.Event{event.Characters{Text: "a"}}},
				}},
				event.Characters{Text: "!"},
			},
		},
		{
			Name:  "blanks inside a variable binding",
			Input: "#$v =\t{1}",
			Expected: []event.Event{
				event.VariableBinding{Name: "v", Expression: "1"},
			},
		},
		{
			Name:  "braces inside expressions",
			Input: `#{ {"a": "}"}["a"] }`,
			Expected: []event.Event{
				event.Expression{Code: ` {"a": "}"}["a"] `},
			},
		},
		{
			Name:  "blanks before a condition",
			Input: `#if  {x}y#end`,
			Expected: []event.Event{
				event.Conditional{Branches: []event.Branch{
					{Condition: "x", Body: []event.Event{event.Characters{Text: "y"}}},
				}},
			},
		},
		{
			Name:  "unbalanced tags are not checked by default",
			Input: `<a><b></a></x>`,
			Expected: []event.Event{
				event.ElementStart{Name: "a"},
				event.ElementStart{Name: "b"},
				event.ElementEnd{Name: "a"},
				event.ElementEnd{Name: "x"},
			},
		},
		{
			Name:  "element closed outside of the branch",
			Input: `<a>#if{x}</a>#end`,
			Expected: []event.Event{
				event.ElementStart{Name: "a"},
				event.Conditional{Branches: []event.Branch{
					{Condition: "x", Body: []event.Event{event.ElementEnd{Name: "a"}}},
				}},
			},
		},
		{
			Name:  "attribute fragments",
			Input: `<x a="a{1+1}b&#38;c" b='say "hi"'/>`,
			Expected: []event.Event{
				event.ElementStart{Name: "x", Attributes: []sink.Attribute{
					{Name: "a", Fragments: []sink.Fragment{
						{Kind: sink.FragmentText, Text: "a"},
						{Kind: sink.FragmentExpression, Text: "1+1"},
						{Kind: sink.FragmentText, Text: "b"},
						{Kind: sink.FragmentEntity, Text: "&"},
						{Kind: sink.FragmentText, Text: "c"},
					}},
					{Name: "b", Fragments: []sink.Fragment{
						{Kind: sink.FragmentText, Text: `say "hi"`},
					}},
				}},
				event.ElementEnd{Name: "x"},
			},
		},
		{
			Name:  "empty constructs",
			Input: `<!----><![CDATA[]]><?go?>`,
			Expected: []event.Event{
				event.Comment{},
				event.CData{},
				event.ProcessingInstruction{Target: "go"},
			},
		},
		{
			Name:  "doctype without external identifier",
			Input: "<!DOCTYPE html>\n",
			Expected: []event.Event{
				event.DocType{Name: "html"},
				event.Characters{Text: "\n"},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := parseEvents(t, []byte(tc.Input), tc.Options...)
			require.NoError(t, err, "Parse should succeed")
			if diff := cmp.Diff(tc.Expected, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	testcases := []struct {
		Name    string
		Input   string
		Options []jxtmpl.ParseOption
		Kind    jxtmpl.ErrorKind
		Err     error
		Line    int
		Column  int
	}{
		{
			Name:   "empty input",
			Input:  "",
			Kind:   jxtmpl.ErrorKindSyntax,
			Err:    jxtmpl.ErrUnexpectedToken,
			Line:   1,
			Column: 1,
		},
		{
			Name:   "unterminated comment",
			Input:  `<!-- never closed`,
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrUnterminatedComment,
			Line:   1,
			Column: 18,
		},
		{
			Name:   "unterminated expression",
			Input:  `#{x`,
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrUnterminatedExpression,
			Line:   1,
			Column: 4,
		},
		{
			Name:   "branch directive outside of a conditional",
			Input:  `#elif{x}`,
			Kind:   jxtmpl.ErrorKindSyntax,
			Err:    jxtmpl.ErrUnexpectedToken,
			Line:   1,
			Column: 1,
		},
		{
			Name:   "empty branch",
			Input:  `#if{x}#end`,
			Kind:   jxtmpl.ErrorKindSyntax,
			Err:    jxtmpl.ErrUnexpectedToken,
			Line:   1,
			Column: 7,
		},
		{
			Name:   "conditional without end",
			Input:  `#if{x}y`,
			Kind:   jxtmpl.ErrorKindSyntax,
			Err:    jxtmpl.ErrUnexpectedToken,
			Line:   1,
			Column: 8,
		},
		{
			Name:   "duplicate attribute",
			Input:  `<a b="1" b="2"/>`,
			Kind:   jxtmpl.ErrorKindSyntax,
			Err:    jxtmpl.ErrDuplicateAttribute,
			Line:   1,
			Column: 10,
		},
		{
			Name:   "surrogate character reference",
			Input:  `&#xD800;`,
			Kind:   jxtmpl.ErrorKindDecode,
			Err:    jxtmpl.ErrInvalidCharRef,
			Line:   1,
			Column: 1,
		},
		{
			Name:   "reference without digits",
			Input:  `<a>&#;</a>`,
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrInvalidCharRef,
			Line:   1,
			Column: 5,
		},
		{
			Name:   "html entity without the option",
			Input:  `&nbsp;`,
			Kind:   jxtmpl.ErrorKindDecode,
			Err:    jxtmpl.ErrUndefinedEntity,
			Line:   1,
			Column: 1,
		},
		{
			Name:    "unknown html entity",
			Input:   `&nosuchthing;`,
			Options: []jxtmpl.ParseOption{jxtmpl.WithHTMLEntities(true)},
			Kind:    jxtmpl.ErrorKindDecode,
			Err:     jxtmpl.ErrUndefinedEntity,
			Line:    1,
			Column:  1,
		},
		{
			Name:   "less than in attribute value",
			Input:  `<a href="x<y"/>`,
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrUnexpectedChar,
			Line:   1,
			Column: 11,
		},
		{
			Name:   "unexpected character on second line",
			Input:  "<p>\n  <q =x>",
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrUnexpectedChar,
			Line:   2,
			Column: 6,
		},
		{
			Name:   "invalid utf-8",
			Input:  "<a>\xff</a>",
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrInvalidUTF8,
			Line:   1,
			Column: 4,
		},
		{
			Name:   "control character",
			Input:  "a\x01",
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrUnexpectedChar,
			Line:   1,
			Column: 2,
		},
		{
			Name:   "illegal character in public identifier",
			Input:  `<!DOCTYPE html PUBLIC "a<b" "c">x`,
			Kind:   jxtmpl.ErrorKindLexical,
			Err:    jxtmpl.ErrInvalidPubidChar,
			Line:   1,
			Column: 25,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := parseEvents(t, []byte(tc.Input), tc.Options...)
			require.Error(t, err, "Parse should fail")

			var perr *jxtmpl.ParseError
			require.True(t, errors.As(err, &perr), "error should be a *ParseError")
			require.Equal(t, tc.Kind, perr.Kind, "error kind should match (%s)", err)
			require.ErrorIs(t, err, tc.Err)
			require.Equal(t, tc.Line, perr.Line, "line should match (%s)", err)
			require.Equal(t, tc.Column, perr.Column, "column should match (%s)", err)
		})
	}
}

func TestSyntaxErrorExpected(t *testing.T) {
	t.Run("missing condition", func(t *testing.T) {
		_, err := parseEvents(t, []byte(`#if{x}a#elif`))
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, jxtmpl.ErrorKindSyntax, perr.Kind)
		require.Equal(t, jxtmpl.NewTokenSet(jxtmpl.TokenLBrace), perr.Expected)
		require.NotNil(t, perr.Found)
		require.Equal(t, jxtmpl.TokenEOF, perr.Found.Kind)
		require.Equal(t, 13, perr.Column)
		require.Equal(t, `unexpected end of input, expecting "{"`, perr.Message)
	})
	t.Run("condition without braces", func(t *testing.T) {
		_, err := parseEvents(t, []byte(`#if x {y}`))
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, jxtmpl.ErrorKindSyntax, perr.Kind)
		require.Equal(t, jxtmpl.NewTokenSet(jxtmpl.TokenLBrace), perr.Expected)
		require.Equal(t, 5, perr.Column)
		require.Equal(t, `unexpected <TEXT> "x", expecting "{"`, perr.Message)
	})
	t.Run("variable binding without equals", func(t *testing.T) {
		_, err := parseEvents(t, []byte(`#$v {1}`))
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, jxtmpl.ErrorKindSyntax, perr.Kind)
		require.Equal(t, jxtmpl.NewTokenSet(jxtmpl.TokenEquals), perr.Expected)
		require.Equal(t, 5, perr.Column)
		require.Equal(t, `unexpected "{", expecting "="`, perr.Message)
	})
	t.Run("directive out of place", func(t *testing.T) {
		_, err := parseEvents(t, []byte(`a#else b#end`))
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, jxtmpl.TokenElse, perr.Found.Kind)
		require.True(t, perr.Expected.Has(jxtmpl.TokenEOF), "end of input is acceptable after an item")
		require.True(t, perr.Expected.Has(jxtmpl.TokenText), "more items are acceptable")
		require.False(t, perr.Expected.Has(jxtmpl.TokenElse), "else is not acceptable")
	})
	t.Run("stray token in tag", func(t *testing.T) {
		_, err := parseEvents(t, []byte(`<a b="1" #`))
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, jxtmpl.ErrorKindLexical, perr.Kind, "'#' is not a token inside a tag")
	})
}

func TestParseNestingLimit(t *testing.T) {
	nested := func(n int) []byte {
		return []byte(strings.Repeat("#if{c}", n) + "x" + strings.Repeat("#end", n))
	}

	t.Run("at the limit", func(t *testing.T) {
		_, err := parseEvents(t, nested(jxtmpl.MaxNestingDepth))
		require.NoError(t, err)
	})
	t.Run("mixed constructs at the limit", func(t *testing.T) {
		input := strings.Repeat("#foreach{i in l}#if{i}", jxtmpl.MaxNestingDepth/2) + "x" +
			strings.Repeat("#end", jxtmpl.MaxNestingDepth)
		_, err := parseEvents(t, []byte(input))
		require.NoError(t, err)
	})
	for _, n := range []int{jxtmpl.MaxNestingDepth + 1, 100000} {
		t.Run(fmt.Sprintf("%d levels", n), func(t *testing.T) {
			_, err := parseEvents(t, nested(n))
			require.ErrorIs(t, err, jxtmpl.ErrNestingTooDeep)

			var perr *jxtmpl.ParseError
			require.True(t, errors.As(err, &perr), "error should be a *ParseError")
			require.Equal(t, jxtmpl.ErrorKindInternal, perr.Kind)
			require.Equal(t, 1, perr.Line)
			require.Equal(t, 6*jxtmpl.MaxNestingDepth+1, perr.Column, "positioned at the first #if past the limit")
		})
	}
	t.Run("parser is usable afterwards", func(t *testing.T) {
		p := jxtmpl.NewParser(jxtmpl.WithHandler(event.NewRecorder()))
		_, err := p.Parse(context.Background(), nested(jxtmpl.MaxNestingDepth+1))
		require.ErrorIs(t, err, jxtmpl.ErrNestingTooDeep)
		_, err = p.Parse(context.Background(), nested(jxtmpl.MaxNestingDepth))
		require.NoError(t, err)
	})
}

func TestStrictNesting(t *testing.T) {
	testcases := []struct {
		Name  string
		Input string
		Err   error
	}{
		{Name: "balanced", Input: `<a>#if{x}<b></b>#else <c/>#end</a>`},
		{Name: "loop body", Input: `<ul>#foreach{i in items}<li>#{i}</li>#end</ul>`},
		{Name: "mismatched close tag", Input: `<a><b></a>`, Err: jxtmpl.ErrMismatchedCloseTag},
		{Name: "close tag without open element", Input: `</a>`, Err: jxtmpl.ErrMismatchedCloseTag},
		{Name: "unclosed at end of input", Input: `<a>x`, Err: jxtmpl.ErrUnclosedElement},
		{Name: "unclosed at end of branch", Input: `#if{x}<a>#end</a>`, Err: jxtmpl.ErrUnclosedElement},
		{Name: "unclosed at end of loop", Input: `#foreach{i in l}<a>#end</a>`, Err: jxtmpl.ErrUnclosedElement},
		{Name: "closing an element of the enclosing scope", Input: `<a>#if{x}</a>#end`, Err: jxtmpl.ErrMismatchedCloseTag},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := parseEvents(t, []byte(tc.Input), jxtmpl.WithStrictNesting(true))
			if tc.Err == nil {
				require.NoError(t, err, "Parse should succeed")
				return
			}
			require.ErrorIs(t, err, tc.Err)
			var perr *jxtmpl.ParseError
			require.True(t, errors.As(err, &perr), "error should be a *ParseError")
			require.Equal(t, jxtmpl.ErrorKindSyntax, perr.Kind)
		})
	}
}

func TestHandlerError(t *testing.T) {
	boom := errors.New("boom")
	h := &sink.Funcs{
		StartElementHandler: func(_ context.Context, name string, _ []sink.Attribute) error {
			if name == "x" {
				return boom
			}
			return nil
		},
	}

	_, err := jxtmpl.NewParser(jxtmpl.WithHandler(h), jxtmpl.WithSystemID("page.tmpl")).
		Parse(context.Background(), []byte("<a>\n  <x/></a>"))
	require.ErrorIs(t, err, boom)

	var perr *jxtmpl.ParseError
	require.True(t, errors.As(err, &perr), "error should be a *ParseError")
	require.Equal(t, jxtmpl.ErrorKindHandler, perr.Kind)
	require.Equal(t, 2, perr.Line)
	require.Equal(t, 3, perr.Column)
	require.Equal(t, "page.tmpl", perr.SystemID)
	require.Equal(t, "  <x/></a>", perr.Context)
}

func TestDocumentLocator(t *testing.T) {
	var loc sink.DocumentLocator
	var got, ids []string
	where := func(what string) error {
		got = append(got, fmt.Sprintf("%s@%d:%d", what, loc.LineNumber(), loc.ColumnNumber()))
		return nil
	}
	h := &sink.Funcs{
		SetDocumentLocatorHandler: func(_ context.Context, l sink.DocumentLocator) error {
			loc = l
			return nil
		},
		StartElementHandler: func(_ context.Context, name string, _ []sink.Attribute) error {
			return where("start " + name)
		},
		EndElementHandler: func(_ context.Context, name string) error {
			return where("end " + name)
		},
		CharactersHandler: func(_ context.Context, ch []byte) error {
			return where(fmt.Sprintf("chars %q", ch))
		},
		ExpressionHandler: func(_ context.Context, code string) error {
			return where("expr " + code)
		},
		ConditionalBranchHandler: func(_ context.Context, cond string) error {
			return where("branch " + cond)
		},
		EndConditionalHandler: func(context.Context) error {
			ids = []string{loc.PublicID(), loc.SystemID()}
			return where("end conditional")
		},
	}

	p := jxtmpl.NewParser(
		jxtmpl.WithHandler(h),
		jxtmpl.WithPublicID("-//jxtmpl//test"),
		jxtmpl.WithSystemID("locator.tmpl"),
	)
	_, err := p.Parse(context.Background(), []byte("<a>\n  #{x}</a>#if{c}y#else z#end"))
	require.NoError(t, err, "Parse should succeed")

	require.Equal(t, []string{
		"start a@1:1",
		`chars "\n  "@1:4`,
		"expr x@2:3",
		"end a@2:7",
		"branch c@2:11",
		`chars "y"@2:17`,
		"branch @2:18",
		`chars "z"@2:24`,
		"end conditional@2:25",
	}, got)
	require.Equal(t, []string{"-//jxtmpl//test", "locator.tmpl"}, ids)
}

func TestParseDefaultDocument(t *testing.T) {
	doc, err := jxtmpl.Parse(context.Background(),
		[]byte(`<a x="1{y}">t&amp;u#{v}</a>`),
		jxtmpl.WithSystemID("doc.tmpl"),
	)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, doc, "Parse should return a document")
	require.Equal(t, "doc.tmpl", doc.SystemID())

	e, ok := doc.FirstChild().(*node.Element)
	require.True(t, ok, "first child should be an element")
	require.Equal(t, "a", e.Name())

	attr, ok := e.Attribute("x")
	require.True(t, ok, "attribute x should exist")
	require.Equal(t, "1{y}", attr.Value())
	require.False(t, attr.IsLiteral())

	text, ok := e.FirstChild().(*node.Text)
	require.True(t, ok, "first child of <a> should be text")
	content, err := text.Content(nil)
	require.NoError(t, err)
	require.Equal(t, "t&u", string(content), "adjacent character events are merged")

	expr, ok := e.LastChild().(*node.Expression)
	require.True(t, ok, "last child of <a> should be an expression")
	require.Equal(t, "v", expr.Code())
}

func TestParseWithHandlerReturnsNoDocument(t *testing.T) {
	doc, err := jxtmpl.NewParser(jxtmpl.WithHandler(&sink.Funcs{})).
		Parse(context.Background(), []byte(`<a/>`))
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestParseContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := jxtmpl.Parse(ctx, []byte(`<a>b</a>`))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParserReuse(t *testing.T) {
	r := event.NewRecorder()
	p := jxtmpl.NewParser(jxtmpl.WithHandler(r))
	input := []byte(`<p a="{x}">#foreach{i in l}#if{i}y#end#end</p>`)

	_, err := p.Parse(context.Background(), input)
	require.NoError(t, err)
	first := r.Events()

	_, err = p.Parse(context.Background(), []byte(`<p>#if{x}`))
	require.Error(t, err, "a failed parse in between")

	_, err = p.Parse(context.Background(), input)
	require.NoError(t, err, "the parser is usable after a failure")
	if diff := cmp.Diff(first, r.Events()); diff != "" {
		t.Errorf("reparse differs (-first +second):\n%s", diff)
	}
}

func TestParseSource(t *testing.T) {
	ctx := context.Background()

	t.Run("reader", func(t *testing.T) {
		doc, err := jxtmpl.NewParser().ParseReader(ctx, strings.NewReader(`<a/>`))
		require.NoError(t, err)
		require.NotNil(t, doc)
	})
	t.Run("no source", func(t *testing.T) {
		_, err := jxtmpl.NewParser().ParseSource(ctx, jxtmpl.Source{})
		require.ErrorIs(t, err, jxtmpl.ErrNoSource)
	})
	t.Run("resolver", func(t *testing.T) {
		var resolved []string
		resolver := jxtmpl.ResolverFunc(func(_ context.Context, publicID, systemID string) (io.ReadCloser, error) {
			resolved = append(resolved, publicID+" "+systemID)
			return io.NopCloser(strings.NewReader(`<a/>`)), nil
		})
		doc, err := jxtmpl.NewParser(jxtmpl.WithResolver(resolver)).
			ParseSource(ctx, jxtmpl.Source{PublicID: "pub", SystemID: "mem:a"})
		require.NoError(t, err)
		require.Equal(t, []string{"pub mem:a"}, resolved)
		require.Equal(t, "mem:a", doc.SystemID())
		require.Equal(t, "pub", doc.PublicID())
	})
	t.Run("resolver failure", func(t *testing.T) {
		missing := errors.New("missing")
		resolver := jxtmpl.ResolverFunc(func(context.Context, string, string) (io.ReadCloser, error) {
			return nil, missing
		})
		_, err := jxtmpl.NewParser(jxtmpl.WithResolver(resolver)).
			ParseSource(ctx, jxtmpl.Source{SystemID: "mem:a"})
		require.ErrorIs(t, err, missing)
	})
	t.Run("file resolver", func(t *testing.T) {
		p := jxtmpl.NewParser(jxtmpl.WithResolver(jxtmpl.FileResolver{BaseDir: "test"}))
		doc, err := p.ParseSource(ctx, jxtmpl.Source{SystemID: "basic.tmpl"})
		require.NoError(t, err)
		require.NotNil(t, doc)
		e, ok := doc.FirstChild().(*node.Element)
		require.True(t, ok, "first child should be an element")
		require.Equal(t, "html", e.Name())
	})
	t.Run("file resolver rejects other schemes", func(t *testing.T) {
		_, err := jxtmpl.NewParser().ParseSource(ctx, jxtmpl.Source{SystemID: "http://example.com/a.tmpl"})
		require.Error(t, err)
	})
	t.Run("errors carry the source name", func(t *testing.T) {
		_, err := jxtmpl.NewParser(jxtmpl.WithHandler(&sink.Funcs{})).
			ParseSource(ctx, jxtmpl.Source{SystemID: "bad.tmpl", Reader: strings.NewReader(`#end`)})
		var perr *jxtmpl.ParseError
		require.True(t, errors.As(err, &perr), "error should be a *ParseError")
		require.Equal(t, "bad.tmpl", perr.SystemID)
	})
}

func TestParseEncoding(t *testing.T) {
	t.Run("latin-1", func(t *testing.T) {
		got, err := parseEvents(t, []byte("<p>caf\xe9</p>"), jxtmpl.WithEncoding("iso-8859-1"))
		require.NoError(t, err)
		require.Equal(t, []event.Event{
			event.ElementStart{Name: "p"},
			event.Characters{Text: "café"},
			event.ElementEnd{Name: "p"},
		}, got)
	})
	t.Run("byte order mark", func(t *testing.T) {
		got, err := parseEvents(t, append([]byte{0xEF, 0xBB, 0xBF}, "x"...))
		require.NoError(t, err)
		require.Equal(t, []event.Event{event.Characters{Text: "x"}}, got)
	})
	t.Run("utf-16", func(t *testing.T) {
		input := []byte{0xFF, 0xFE, '<', 0, 'a', 0, '/', 0, '>', 0}
		got, err := parseEvents(t, input)
		require.NoError(t, err)
		require.Equal(t, []event.Event{
			event.ElementStart{Name: "a"},
			event.ElementEnd{Name: "a"},
		}, got)
	})
	t.Run("unknown encoding", func(t *testing.T) {
		_, err := parseEvents(t, []byte("x"), jxtmpl.WithEncoding("no-such-charset"))
		require.ErrorIs(t, err, encoding.ErrUnknownEncoding)
	})
}

func TestParseLargeInput(t *testing.T) {
	var buf bytes.Buffer
	for i := range 2000 {
		fmt.Fprintf(&buf, "<li id=\"%d\">#if{x}#foreach{i in l}&#x41;#end#end</li>\n", i)
	}

	var n int
	h := &sink.Funcs{
		CharactersHandler: func(_ context.Context, ch []byte) error {
			if string(ch) == "A" {
				n++
			}
			return nil
		},
	}
	_, err := jxtmpl.NewParser(jxtmpl.WithHandler(h), jxtmpl.WithStrictNesting(true)).
		Parse(context.Background(), buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2000, n)
}
