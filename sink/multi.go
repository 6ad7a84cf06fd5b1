package sink

import "context"

type multi []Handler

// Multi returns a Handler that forwards every event to each of the
// given handlers in order. The first error stops the fan out.
func Multi(handlers ...Handler) Handler {
	var m multi
	for _, h := range handlers {
		if h == nil {
			continue
		}
		if nested, ok := h.(multi); ok {
			m = append(m, nested...)
			continue
		}
		m = append(m, h)
	}
	return m
}

func (m multi) each(fn func(Handler) error) error {
	for _, h := range m {
		if err := fn(h); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) SetDocumentLocator(ctx context.Context, loc DocumentLocator) error {
	return m.each(func(h Handler) error { return h.SetDocumentLocator(ctx, loc) })
}

func (m multi) StartDocument(ctx context.Context) error {
	return m.each(func(h Handler) error { return h.StartDocument(ctx) })
}

func (m multi) EndDocument(ctx context.Context) error {
	return m.each(func(h Handler) error { return h.EndDocument(ctx) })
}

func (m multi) DocType(ctx context.Context, name, publicID, systemID string) error {
	return m.each(func(h Handler) error { return h.DocType(ctx, name, publicID, systemID) })
}

func (m multi) StartElement(ctx context.Context, name string, attrs []Attribute) error {
	return m.each(func(h Handler) error { return h.StartElement(ctx, name, attrs) })
}

func (m multi) EndElement(ctx context.Context, name string) error {
	return m.each(func(h Handler) error { return h.EndElement(ctx, name) })
}

func (m multi) Characters(ctx context.Context, ch []byte) error {
	return m.each(func(h Handler) error { return h.Characters(ctx, ch) })
}

func (m multi) Comment(ctx context.Context, value []byte) error {
	return m.each(func(h Handler) error { return h.Comment(ctx, value) })
}

func (m multi) CDATABlock(ctx context.Context, value []byte) error {
	return m.each(func(h Handler) error { return h.CDATABlock(ctx, value) })
}

func (m multi) ProcessingInstruction(ctx context.Context, target, data string) error {
	return m.each(func(h Handler) error { return h.ProcessingInstruction(ctx, target, data) })
}

func (m multi) Expression(ctx context.Context, code string) error {
	return m.each(func(h Handler) error { return h.Expression(ctx, code) })
}

func (m multi) VariableBinding(ctx context.Context, name, expr string) error {
	return m.each(func(h Handler) error { return h.VariableBinding(ctx, name, expr) })
}

func (m multi) StartConditional(ctx context.Context) error {
	return m.each(func(h Handler) error { return h.StartConditional(ctx) })
}

func (m multi) ConditionalBranch(ctx context.Context, cond string) error {
	return m.each(func(h Handler) error { return h.ConditionalBranch(ctx, cond) })
}

func (m multi) EndConditional(ctx context.Context) error {
	return m.each(func(h Handler) error { return h.EndConditional(ctx) })
}

func (m multi) StartForEach(ctx context.Context, expr string) error {
	return m.each(func(h Handler) error { return h.StartForEach(ctx, expr) })
}

func (m multi) EndForEach(ctx context.Context) error {
	return m.each(func(h Handler) error { return h.EndForEach(ctx) })
}
