package sink

import "context"

type SetDocumentLocatorFunc func(ctx context.Context, loc DocumentLocator) error
type StartDocumentFunc func(ctx context.Context) error
type EndDocumentFunc func(ctx context.Context) error
type DocTypeFunc func(ctx context.Context, name, publicID, systemID string) error
type StartElementFunc func(ctx context.Context, name string, attrs []Attribute) error
type EndElementFunc func(ctx context.Context, name string) error
type CharactersFunc func(ctx context.Context, ch []byte) error
type CommentFunc func(ctx context.Context, value []byte) error
type CDATABlockFunc func(ctx context.Context, value []byte) error
type ProcessingInstructionFunc func(ctx context.Context, target, data string) error
type ExpressionFunc func(ctx context.Context, code string) error
type VariableBindingFunc func(ctx context.Context, name, expr string) error
type StartConditionalFunc func(ctx context.Context) error
type ConditionalBranchFunc func(ctx context.Context, cond string) error
type EndConditionalFunc func(ctx context.Context) error
type StartForEachFunc func(ctx context.Context, expr string) error
type EndForEachFunc func(ctx context.Context) error

// Funcs is the callback based Handler. Events whose callback is nil
// are ignored, so the zero value discards everything.
type Funcs struct {
	SetDocumentLocatorHandler    SetDocumentLocatorFunc
	StartDocumentHandler         StartDocumentFunc
	EndDocumentHandler           EndDocumentFunc
	DocTypeHandler               DocTypeFunc
	StartElementHandler          StartElementFunc
	EndElementHandler            EndElementFunc
	CharactersHandler            CharactersFunc
	CommentHandler               CommentFunc
	CDATABlockHandler            CDATABlockFunc
	ProcessingInstructionHandler ProcessingInstructionFunc
	ExpressionHandler            ExpressionFunc
	VariableBindingHandler       VariableBindingFunc
	StartConditionalHandler      StartConditionalFunc
	ConditionalBranchHandler     ConditionalBranchFunc
	EndConditionalHandler        EndConditionalFunc
	StartForEachHandler          StartForEachFunc
	EndForEachHandler            EndForEachFunc
}

var _ Handler = Funcs{}

func (s Funcs) SetDocumentLocator(ctx context.Context, loc DocumentLocator) error {
	if h := s.SetDocumentLocatorHandler; h != nil {
		return h(ctx, loc)
	}
	return nil
}

func (s Funcs) StartDocument(ctx context.Context) error {
	if h := s.StartDocumentHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s Funcs) EndDocument(ctx context.Context) error {
	if h := s.EndDocumentHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s Funcs) DocType(ctx context.Context, name, publicID, systemID string) error {
	if h := s.DocTypeHandler; h != nil {
		return h(ctx, name, publicID, systemID)
	}
	return nil
}

func (s Funcs) StartElement(ctx context.Context, name string, attrs []Attribute) error {
	if h := s.StartElementHandler; h != nil {
		return h(ctx, name, attrs)
	}
	return nil
}

func (s Funcs) EndElement(ctx context.Context, name string) error {
	if h := s.EndElementHandler; h != nil {
		return h(ctx, name)
	}
	return nil
}

func (s Funcs) Characters(ctx context.Context, ch []byte) error {
	if h := s.CharactersHandler; h != nil {
		return h(ctx, ch)
	}
	return nil
}

func (s Funcs) Comment(ctx context.Context, value []byte) error {
	if h := s.CommentHandler; h != nil {
		return h(ctx, value)
	}
	return nil
}

func (s Funcs) CDATABlock(ctx context.Context, value []byte) error {
	if h := s.CDATABlockHandler; h != nil {
		return h(ctx, value)
	}
	return nil
}

func (s Funcs) ProcessingInstruction(ctx context.Context, target, data string) error {
	if h := s.ProcessingInstructionHandler; h != nil {
		return h(ctx, target, data)
	}
	return nil
}

func (s Funcs) Expression(ctx context.Context, code string) error {
	if h := s.ExpressionHandler; h != nil {
		return h(ctx, code)
	}
	return nil
}

func (s Funcs) VariableBinding(ctx context.Context, name, expr string) error {
	if h := s.VariableBindingHandler; h != nil {
		return h(ctx, name, expr)
	}
	return nil
}

func (s Funcs) StartConditional(ctx context.Context) error {
	if h := s.StartConditionalHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s Funcs) ConditionalBranch(ctx context.Context, cond string) error {
	if h := s.ConditionalBranchHandler; h != nil {
		return h(ctx, cond)
	}
	return nil
}

func (s Funcs) EndConditional(ctx context.Context) error {
	if h := s.EndConditionalHandler; h != nil {
		return h(ctx)
	}
	return nil
}

func (s Funcs) StartForEach(ctx context.Context, expr string) error {
	if h := s.StartForEachHandler; h != nil {
		return h(ctx, expr)
	}
	return nil
}

func (s Funcs) EndForEach(ctx context.Context) error {
	if h := s.EndForEachHandler; h != nil {
		return h(ctx)
	}
	return nil
}
