package node

// Expression is a #{...} block. Its value is only known once the
// template is evaluated, so it contributes no content.
type Expression struct {
	treeNode
	code string
}

var _ Node = (*Expression)(nil)

func NewExpression(code string) *Expression {
	return &Expression{code: code}
}

func (*Expression) Type() NodeType {
	return ExpressionNodeType
}

func (*Expression) LocalName() string {
	return "#expression"
}

func (e *Expression) Code() string {
	return e.code
}

func (e *Expression) Content(dst []byte) ([]byte, error) {
	return dst, nil
}

func (e *Expression) AddChild(Node) error {
	return ErrInvalidOperation
}

func (e *Expression) AddContent([]byte) error {
	return ErrInvalidOperation
}

func (e *Expression) AddSibling(cur Node) error {
	return addSibling(e, cur)
}

// VariableBinding is a #$name{...} block.
type VariableBinding struct {
	treeNode
	name string
	expr string
}

var _ Node = (*VariableBinding)(nil)

func NewVariableBinding(name, expr string) *VariableBinding {
	return &VariableBinding{
		name: name,
		expr: expr,
	}
}

func (*VariableBinding) Type() NodeType {
	return VariableBindingNodeType
}

func (v *VariableBinding) LocalName() string {
	return v.name
}

func (v *VariableBinding) Name() string {
	return v.name
}

func (v *VariableBinding) Expr() string {
	return v.expr
}

func (v *VariableBinding) Content(dst []byte) ([]byte, error) {
	return dst, nil
}

func (v *VariableBinding) AddChild(Node) error {
	return ErrInvalidOperation
}

func (v *VariableBinding) AddContent([]byte) error {
	return ErrInvalidOperation
}

func (v *VariableBinding) AddSibling(cur Node) error {
	return addSibling(v, cur)
}

// Conditional is an #if chain. Its children are Branch nodes, one per
// #if, #elif and #else arm, in source order.
type Conditional struct {
	treeNode
}

var _ Node = (*Conditional)(nil)

func NewConditional() *Conditional {
	return &Conditional{}
}

func (*Conditional) Type() NodeType {
	return ConditionalNodeType
}

func (*Conditional) LocalName() string {
	return "#if"
}

// Branches appends the arms of the conditional to dst.
func (c *Conditional) Branches(dst []*Branch) []*Branch {
	for n := c.firstChild; n != nil; n = n.NextSibling() {
		if b, ok := n.(*Branch); ok {
			dst = append(dst, b)
		}
	}
	return dst
}

// Content of a conditional depends on which arm is taken, so it
// contributes none.
func (c *Conditional) Content(dst []byte) ([]byte, error) {
	return dst, nil
}

func (c *Conditional) AddChild(cur Node) error {
	if _, ok := cur.(*Branch); !ok {
		return ErrInvalidOperation
	}
	if last, ok := c.lastChild.(*Branch); ok && last.IsElse() {
		return ErrInvalidOperation
	}
	return addChild(c, cur)
}

func (c *Conditional) AddContent([]byte) error {
	return ErrInvalidOperation
}

func (c *Conditional) AddSibling(cur Node) error {
	return addSibling(c, cur)
}

// Branch is one arm of a Conditional. The #else arm has an empty
// condition.
type Branch struct {
	treeNode
	condition string
}

var _ Node = (*Branch)(nil)

func NewBranch(condition string) *Branch {
	return &Branch{condition: condition}
}

func (*Branch) Type() NodeType {
	return BranchNodeType
}

func (b *Branch) LocalName() string {
	if b.IsElse() {
		return "#else"
	}
	return "#branch"
}

func (b *Branch) Condition() string {
	return b.condition
}

func (b *Branch) IsElse() bool {
	return b.condition == ""
}

func (b *Branch) AddChild(cur Node) error {
	return addChild(b, cur)
}

func (b *Branch) AddContent(content []byte) error {
	return addContent(b, content)
}

func (b *Branch) AddSibling(cur Node) error {
	if _, ok := cur.(*Branch); !ok {
		return ErrInvalidOperation
	}
	return addSibling(b, cur)
}

// ForEach is a #foreach{...} loop. Its children are the loop body.
type ForEach struct {
	treeNode
	expr string
}

var _ Node = (*ForEach)(nil)

func NewForEach(expr string) *ForEach {
	return &ForEach{expr: expr}
}

func (*ForEach) Type() NodeType {
	return ForEachNodeType
}

func (*ForEach) LocalName() string {
	return "#foreach"
}

func (f *ForEach) Expr() string {
	return f.expr
}

func (f *ForEach) AddChild(cur Node) error {
	return addChild(f, cur)
}

func (f *ForEach) AddContent(b []byte) error {
	return addContent(f, b)
}

func (f *ForEach) AddSibling(cur Node) error {
	return addSibling(f, cur)
}
