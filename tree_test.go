package jxtmpl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lestrrat-go/jxtmpl"
	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/stretchr/testify/require"
)

func TestTreeBuilder(t *testing.T) {
	doc, err := jxtmpl.Parse(context.Background(),
		[]byte(`<!DOCTYPE html><!--c-->#if{a}<b>x</b>#elif{c}y#else z#end#foreach{i in l}<li/>#end#$v={1}`))
	require.NoError(t, err)

	dt := doc.DocType()
	require.NotNil(t, dt, "document type should be recorded")
	require.Equal(t, "html", dt.Name())

	var types []node.NodeType
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		types = append(types, n.Type())
	}
	require.Equal(t, []node.NodeType{
		node.DocumentTypeNodeType,
		node.CommentNodeType,
		node.ConditionalNodeType,
		node.ForEachNodeType,
		node.VariableBindingNodeType,
	}, types)

	cond, ok := dt.NextSibling().NextSibling().(*node.Conditional)
	require.True(t, ok, "third child should be a conditional")
	branches := cond.Branches(nil)
	require.Len(t, branches, 3)
	require.Equal(t, "a", branches[0].Condition())
	require.Equal(t, "c", branches[1].Condition())
	require.True(t, branches[2].IsElse())

	b, ok := branches[0].FirstChild().(*node.Element)
	require.True(t, ok, "first branch should hold an element")
	require.Equal(t, "b", b.Name())

	content, err := branches[2].Content(nil)
	require.NoError(t, err)
	require.Equal(t, "z", string(content))

	loop, ok := cond.NextSibling().(*node.ForEach)
	require.True(t, ok, "fourth child should be a loop")
	require.Equal(t, "i in l", loop.Expr())
	li, ok := loop.FirstChild().(*node.Element)
	require.True(t, ok, "loop body should hold an element")
	require.Equal(t, "li", li.Name())
	require.Nil(t, li.FirstChild())

	v, ok := doc.LastChild().(*node.VariableBinding)
	require.True(t, ok, "last child should be a variable binding")
	require.Equal(t, "v", v.Name())
	require.Equal(t, "1", v.Expr())
}

func TestTreeBuilderNesting(t *testing.T) {
	testcases := []struct {
		Name  string
		Input string
	}{
		{Name: "mismatched close tag", Input: `<a><b></a>`},
		{Name: "close tag without open element", Input: `</a>`},
		{Name: "unclosed element", Input: `<a>`},
		{Name: "element closed outside of the branch", Input: `<a>#if{x}</a>#end`},
		{Name: "element left open in the branch", Input: `#if{x}<a>#else y#end`},
		{Name: "element left open in the loop", Input: `#foreach{i in l}<a>#end</a>`},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			b := jxtmpl.NewTreeBuilder()
			_, err := jxtmpl.NewParser(jxtmpl.WithHandler(b)).Parse(context.Background(), []byte(tc.Input))
			require.Error(t, err)

			var perr *jxtmpl.ParseError
			require.True(t, errors.As(err, &perr), "error should be a *ParseError")
			require.Equal(t, jxtmpl.ErrorKindHandler, perr.Kind)
			require.Nil(t, b.Document(), "no document after a failed build")
		})
	}
}

func TestTreeBuilderReuse(t *testing.T) {
	b := jxtmpl.NewTreeBuilder()
	p := jxtmpl.NewParser(jxtmpl.WithHandler(b))

	_, err := p.Parse(context.Background(), []byte(`<a>`))
	require.Error(t, err)

	_, err = p.Parse(context.Background(), []byte(`<a>x</a>`))
	require.NoError(t, err)
	doc := b.Document()
	require.NotNil(t, doc)

	content, err := doc.Content(nil)
	require.NoError(t, err)
	require.Equal(t, "x", string(content))
}

func TestTreeBuilderOutsideDocument(t *testing.T) {
	ctx := context.Background()
	b := jxtmpl.NewTreeBuilder()
	require.Error(t, b.Characters(ctx, []byte("x")))
	require.Error(t, b.StartElement(ctx, "a", nil))
	require.Error(t, b.Expression(ctx, "x"))
	require.Nil(t, b.Document())
}
