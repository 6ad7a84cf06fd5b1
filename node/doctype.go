package node

// DocumentType is the <!DOCTYPE ...> declaration of a template.
// Internal subsets are not supported, so only the name and the
// external identifiers are kept.
type DocumentType struct {
	treeNode
	name     string
	publicID string
	systemID string
}

var _ Node = (*DocumentType)(nil)

func NewDocumentType(name, publicID, systemID string) *DocumentType {
	return &DocumentType{
		name:     name,
		publicID: publicID,
		systemID: systemID,
	}
}

func (*DocumentType) Type() NodeType {
	return DocumentTypeNodeType
}

func (dt *DocumentType) LocalName() string {
	return dt.name
}

func (dt *DocumentType) Name() string {
	return dt.name
}

func (dt *DocumentType) PublicID() string {
	return dt.publicID
}

func (dt *DocumentType) SystemID() string {
	return dt.systemID
}

func (dt *DocumentType) Content(dst []byte) ([]byte, error) {
	return dst, nil
}

func (dt *DocumentType) AddChild(Node) error {
	return ErrInvalidOperation
}

func (dt *DocumentType) AddContent([]byte) error {
	return ErrInvalidOperation
}

func (dt *DocumentType) AddSibling(cur Node) error {
	return addSibling(dt, cur)
}
