// Package node is the tree the default handler builds from parse
// events. Template constructs are nodes like any other: a Conditional
// holds one Branch per arm, a ForEach holds its body.
package node

import (
	"errors"
	"strconv"
)

// NodeType represents the type of a node in the template tree
type NodeType int

const (
	ElementNodeType NodeType = iota + 1
	TextNodeType
	CDATASectionNodeType
	ProcessingInstructionNodeType
	CommentNodeType
	DocumentNodeType
	DocumentTypeNodeType
	ExpressionNodeType
	VariableBindingNodeType
	ConditionalNodeType
	BranchNodeType
	ForEachNodeType
)

var nodeTypeNames = map[NodeType]string{
	ElementNodeType:               "Element",
	TextNodeType:                  "Text",
	CDATASectionNodeType:          "CDATASection",
	ProcessingInstructionNodeType: "ProcessingInstruction",
	CommentNodeType:               "Comment",
	DocumentNodeType:              "Document",
	DocumentTypeNodeType:          "DocumentType",
	ExpressionNodeType:            "Expression",
	VariableBindingNodeType:       "VariableBinding",
	ConditionalNodeType:           "Conditional",
	BranchNodeType:                "Branch",
	ForEachNodeType:               "ForEach",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNodeInTree       = errors.New("node is already part of a tree")
)

// Node interface defines the common functionality for all node types
type Node interface {
	links() *treeNode

	AddChild(Node) error
	AddContent([]byte) error
	AddSibling(Node) error

	Type() NodeType
	// Content appends the character content of the node to dst.
	Content(dst []byte) ([]byte, error)

	FirstChild() Node
	LastChild() Node

	LocalName() string

	NextSibling() Node
	OwnerDocument() *Document
	Parent() Node
	PrevSibling() Node

	SetOwnerDocument(doc *Document) error
}
