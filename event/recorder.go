package event

import (
	"context"

	"github.com/lestrrat-go/jxtmpl/internal/stack"
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/pkg/errors"
)

// scope is a template construct whose body is being recorded. Exactly
// one of cond and loop is set.
type scope struct {
	cond *Conditional
	loop *ForEach
}

// Recorder is a sink.Handler that keeps every event it receives.
// A Recorder may be reused; each StartDocument starts a new recording.
type Recorder struct {
	events []Event
	scopes *stack.Stack[*scope]
}

var _ sink.Handler = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		scopes: stack.New[*scope](0),
	}
}

// Events returns the events recorded so far. Conditionals and loops
// only appear once they have ended.
func (r *Recorder) Events() []Event {
	return r.events
}

func (r *Recorder) add(ev Event) error {
	s, ok := r.scopes.Peek()
	switch {
	case !ok:
		r.events = append(r.events, ev)
	case s.cond != nil:
		n := len(s.cond.Branches)
		if n == 0 {
			return errors.Errorf("%s received before the first conditional branch", ev)
		}
		s.cond.Branches[n-1].Body = append(s.cond.Branches[n-1].Body, ev)
	default:
		s.loop.Body = append(s.loop.Body, ev)
	}
	return nil
}

func (r *Recorder) SetDocumentLocator(context.Context, sink.DocumentLocator) error {
	return nil
}

func (r *Recorder) StartDocument(context.Context) error {
	r.events = nil
	r.scopes.Reset()
	return nil
}

func (r *Recorder) EndDocument(context.Context) error {
	if s, ok := r.scopes.Peek(); ok {
		if s.cond != nil {
			return errors.New("conditional not ended at the end of the document")
		}
		return errors.New("loop not ended at the end of the document")
	}
	return nil
}

func (r *Recorder) DocType(_ context.Context, name, publicID, systemID string) error {
	return r.add(DocType{Name: name, PublicID: publicID, SystemID: systemID})
}

func (r *Recorder) StartElement(_ context.Context, name string, attrs []sink.Attribute) error {
	return r.add(ElementStart{Name: name, Attributes: attrs})
}

func (r *Recorder) EndElement(_ context.Context, name string) error {
	return r.add(ElementEnd{Name: name})
}

func (r *Recorder) Characters(_ context.Context, ch []byte) error {
	return r.add(Characters{Text: string(ch)})
}

func (r *Recorder) Comment(_ context.Context, value []byte) error {
	return r.add(Comment{Text: string(value)})
}

func (r *Recorder) CDATABlock(_ context.Context, value []byte) error {
	return r.add(CData{Text: string(value)})
}

func (r *Recorder) ProcessingInstruction(_ context.Context, target, data string) error {
	return r.add(ProcessingInstruction{Target: target, Data: data})
}

func (r *Recorder) Expression(_ context.Context, code string) error {
	return r.add(Expression{Code: code})
}

func (r *Recorder) VariableBinding(_ context.Context, name, expr string) error {
	return r.add(VariableBinding{Name: name, Expression: expr})
}

func (r *Recorder) StartConditional(context.Context) error {
	return r.scopes.Push(&scope{cond: &Conditional{}})
}

func (r *Recorder) ConditionalBranch(_ context.Context, cond string) error {
	s, ok := r.scopes.Peek()
	if !ok || s.cond == nil {
		return errors.New("conditional branch outside of a conditional")
	}
	s.cond.Branches = append(s.cond.Branches, Branch{Condition: cond})
	return nil
}

func (r *Recorder) EndConditional(context.Context) error {
	s, ok := r.scopes.Peek()
	if !ok || s.cond == nil {
		return errors.New("end of conditional outside of a conditional")
	}
	if _, err := r.scopes.Pop(); err != nil {
		return err
	}
	return r.add(*s.cond)
}

func (r *Recorder) StartForEach(_ context.Context, expr string) error {
	return r.scopes.Push(&scope{loop: &ForEach{Expression: expr}})
}

func (r *Recorder) EndForEach(context.Context) error {
	s, ok := r.scopes.Peek()
	if !ok || s.loop == nil {
		return errors.New("end of loop outside of a loop")
	}
	if _, err := r.scopes.Pop(); err != nil {
		return err
	}
	return r.add(*s.loop)
}
