package node

// Comment is a <!-- ... --> block, kept without its delimiters.
type Comment struct {
	treeNode
	text []byte
}

var _ Node = (*Comment)(nil)

func NewComment(text []byte) *Comment {
	return &Comment{text: text}
}

func (*Comment) Type() NodeType {
	return CommentNodeType
}

func (*Comment) LocalName() string {
	return "#comment"
}

func (c *Comment) Content(dst []byte) ([]byte, error) {
	return append(dst, c.text...), nil
}

// AddChild always fails. A comment only holds text.
func (c *Comment) AddChild(Node) error {
	return ErrInvalidOperation
}

func (c *Comment) AddContent(b []byte) error {
	c.text = append(c.text, b...)
	return nil
}

func (c *Comment) AddSibling(sibling Node) error {
	return addSibling(c, sibling)
}
