package node

import "errors"

// treeNode carries the links shared by every node. Children form a
// doubly linked list and the parent holds both ends of it.
type treeNode struct {
	doc        *Document
	parent     Node
	prev       Node
	next       Node
	firstChild Node
	lastChild  Node
}

func (n *treeNode) links() *treeNode {
	return n
}

func (n *treeNode) OwnerDocument() *Document {
	return n.doc
}

func (n *treeNode) Parent() Node {
	return n.parent
}

func (n *treeNode) PrevSibling() Node {
	return n.prev
}

func (n *treeNode) NextSibling() Node {
	return n.next
}

func (n *treeNode) FirstChild() Node {
	return n.firstChild
}

func (n *treeNode) LastChild() Node {
	return n.lastChild
}

// Content appends the content of the children to dst. Comments and
// processing instructions are not content.
func (n *treeNode) Content(dst []byte) ([]byte, error) {
	for c := n.firstChild; c != nil; c = c.NextSibling() {
		switch c.Type() {
		case CommentNodeType, ProcessingInstructionNodeType:
			continue
		}
		var err error
		if dst, err = c.Content(dst); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

func (n *treeNode) SetOwnerDocument(doc *Document) error {
	if doc == nil {
		return errors.New("owner document must not be nil")
	}
	n.doc = doc
	return nil
}

func (n *treeNode) linked() bool {
	return n.parent != nil || n.prev != nil || n.next != nil
}

// addChild links child in as the last child of parent.
func addChild(parent, child Node) error {
	if child == nil {
		return errors.New("child must not be nil")
	}
	ct := child.links()
	if ct.linked() || child == parent {
		return ErrNodeInTree
	}

	pt := parent.links()
	ct.parent = parent
	if last := pt.lastChild; last != nil {
		last.links().next = child
		ct.prev = last
	} else {
		pt.firstChild = child
	}
	pt.lastChild = child
	return nil
}

// addSibling links sibling in after the last sibling of n.
func addSibling(n, sibling Node) error {
	if sibling == nil {
		return errors.New("sibling must not be nil")
	}
	if parent := n.Parent(); parent != nil {
		return addChild(parent, sibling)
	}

	st := sibling.links()
	if st.linked() || sibling == n {
		return ErrNodeInTree
	}
	last := n
	for last.NextSibling() != nil {
		last = last.NextSibling()
	}
	last.links().next = sibling
	st.prev = last
	return nil
}

// addContent appends b to the text node that ends n, starting a new
// one when n ends with anything else.
func addContent(n Node, b []byte) error {
	if last, ok := n.LastChild().(*Text); ok {
		return last.AddContent(b)
	}
	t := NewText(b)
	t.doc = n.OwnerDocument()
	return addChild(n, t)
}
