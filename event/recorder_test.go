package event_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lestrrat-go/jxtmpl"
	"github.com/lestrrat-go/jxtmpl/event"
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, input string) []event.Event {
	t.Helper()
	r := event.NewRecorder()
	_, err := jxtmpl.NewParser(jxtmpl.WithHandler(r)).Parse(context.Background(), []byte(input))
	require.NoError(t, err, "Parse succeeds")
	return r.Events()
}

func TestRecorder(t *testing.T) {
	testcases := []struct {
		Name     string
		Input    string
		Expected []event.Event
	}{
		{
			Name:  "conditional with three branches",
			Input: `#if{c1}A#elif{c2}B#else C#end`,
			Expected: []event.Event{
				event.Conditional{Branches: []event.Branch{
					{Condition: "c1", Body: []event.Event{event.Characters{Text: "A"}}},
					{Condition: "c2", Body: []event.Event{event.Characters{Text: "B"}}},
					{Condition: "", Body: []event.Event{event.Characters{Text: "C"}}},
				}},
			},
		},
		{
			Name:  "loop inside element",
			Input: `<ul>#foreach{item in items}<li>#{item.name}</li>#end</ul>`,
			Expected: []event.Event{
				event.ElementStart{Name: "ul"},
				event.ForEach{Expression: "item in items", Body: []event.Event{
					event.ElementStart{Name: "li"},
					event.Expression{Code: "item.name"},
					event.ElementEnd{Name: "li"},
				}},
				event.ElementEnd{Name: "ul"},
			},
		},
		{
			Name:  "attribute fragments",
			Input: `<x a="a{1+1}b&#38;c"/>`,
			Expected: []event.Event{
				event.ElementStart{Name: "x", Attributes: []sink.Attribute{
					{Name: "a", Fragments: []sink.Fragment{
						{Kind: sink.FragmentText, Text: "a"},
						{Kind: sink.FragmentExpression, Text: "1+1"},
						{Kind: sink.FragmentText, Text: "b"},
						{Kind: sink.FragmentEntity, Text: "&"},
						{Kind: sink.FragmentText, Text: "c"},
					}},
				}},
				event.ElementEnd{Name: "x"},
			},
		},
		{
			Name:  "prolog constructs",
			Input: `<!DOCTYPE html SYSTEM "about:legacy-compat"><?php echo 1; ?><!-- c --><![CDATA[<raw>]]>#$n={1}`,
			Expected: []event.Event{
				event.DocType{Name: "html", SystemID: "about:legacy-compat"},
				event.ProcessingInstruction{Target: "php", Data: "echo 1; "},
				event.Comment{Text: " c "},
				event.CData{Text: "<raw>"},
				event.VariableBinding{Name: "n", Expression: "1"},
			},
		},
		{
			Name:  "nested constructs",
			Input: `#foreach{row in rows}#if{row.ok}ok#end#end`,
			Expected: []event.Event{
				event.ForEach{Expression: "row in rows", Body: []event.Event{
					event.Conditional{Branches: []event.Branch{
						{Condition: "row.ok", Body: []event.Event{event.Characters{Text: "ok"}}},
					}},
				}},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			got := record(t, tc.Input)
			if diff := cmp.Diff(tc.Expected, got); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecorderReuse(t *testing.T) {
	r := event.NewRecorder()
	p := jxtmpl.NewParser(jxtmpl.WithHandler(r))

	_, err := p.Parse(context.Background(), []byte(`<a>#{x}</a>`))
	require.NoError(t, err)
	first := r.Events()

	_, err = p.Parse(context.Background(), []byte(`<a>#{x}</a>`))
	require.NoError(t, err)
	if diff := cmp.Diff(first, r.Events()); diff != "" {
		t.Errorf("second parse differs (-first +second):\n%s", diff)
	}
}

func TestRecorderMisuse(t *testing.T) {
	ctx := context.Background()

	r := event.NewRecorder()
	require.NoError(t, r.StartDocument(ctx))
	require.Error(t, r.ConditionalBranch(ctx, "x"), "branch needs a conditional")
	require.Error(t, r.EndForEach(ctx), "end needs a loop")

	require.NoError(t, r.StartConditional(ctx))
	require.Error(t, r.Characters(ctx, []byte("x")), "content needs a branch")
	require.Error(t, r.EndDocument(ctx), "conditional is still open")
}

func TestFormat(t *testing.T) {
	events := record(t, `<p class="a{b}">#if{x}<b>y</b>#else z#end</p>`)

	var buf bytes.Buffer
	require.NoError(t, event.Format(&buf, events))

	const expected = `start "p" class=[text:"a" expr:"b"]
conditional
  branch "x"
    start "b"
    chars "y"
    end "b"
  else
    chars "z"
end "p"
`
	require.Equal(t, expected, buf.String())
}
