package node

// ProcessingInstruction represents a processing instruction node
type ProcessingInstruction struct {
	treeNode
	target string
	data   string
}

var _ Node = (*ProcessingInstruction)(nil)

func NewProcessingInstruction(target, data string) *ProcessingInstruction {
	return &ProcessingInstruction{
		target: target,
		data:   data,
	}
}

func (pi *ProcessingInstruction) Type() NodeType {
	return ProcessingInstructionNodeType
}

func (pi *ProcessingInstruction) LocalName() string {
	return pi.target
}

func (pi *ProcessingInstruction) Content(dst []byte) ([]byte, error) {
	return append(dst, pi.data...), nil
}

func (pi *ProcessingInstruction) AddChild(Node) error {
	return ErrInvalidOperation
}

func (pi *ProcessingInstruction) AddContent([]byte) error {
	return ErrInvalidOperation
}

func (pi *ProcessingInstruction) AddSibling(cur Node) error {
	return addSibling(pi, cur)
}

func (pi *ProcessingInstruction) Target() string {
	return pi.target
}

func (pi *ProcessingInstruction) Data() string {
	return pi.data
}
