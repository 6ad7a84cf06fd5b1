// Package sink defines the receiving end of the template parser: an
// ordered stream of callbacks, one per construct, in document order.
package sink

import "context"

// DocumentLocator tells a handler where in the source the construct
// being reported starts.
type DocumentLocator interface {
	LineNumber() int
	ColumnNumber() int
	PublicID() string
	SystemID() string
}

// Handler receives parse events. Any error returned aborts the parse.
//
// Template conditionals arrive as StartConditional, then one
// ConditionalBranch before the body of each branch (the condition is
// empty for the #else branch), then EndConditional. Loops arrive as
// StartForEach, the body, EndForEach.
type Handler interface {
	SetDocumentLocator(ctx context.Context, loc DocumentLocator) error
	StartDocument(ctx context.Context) error
	EndDocument(ctx context.Context) error
	DocType(ctx context.Context, name, publicID, systemID string) error
	StartElement(ctx context.Context, name string, attrs []Attribute) error
	EndElement(ctx context.Context, name string) error
	Characters(ctx context.Context, ch []byte) error
	Comment(ctx context.Context, value []byte) error
	CDATABlock(ctx context.Context, value []byte) error
	ProcessingInstruction(ctx context.Context, target, data string) error
	Expression(ctx context.Context, code string) error
	VariableBinding(ctx context.Context, name, expr string) error
	StartConditional(ctx context.Context) error
	ConditionalBranch(ctx context.Context, cond string) error
	EndConditional(ctx context.Context) error
	StartForEach(ctx context.Context, expr string) error
	EndForEach(ctx context.Context) error
}
