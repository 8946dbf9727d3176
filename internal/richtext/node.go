package richtext

// Kind names a node variant.
type Kind string

const (
	KindText           Kind = "text"
	KindParagraph      Kind = "paragraph"
	KindHeading        Kind = "heading"
	KindUnorderedList  Kind = "unordered-list"
	KindOrderedList    Kind = "ordered-list"
	KindListItem       Kind = "list-item"
	KindBlockquote     Kind = "blockquote"
	KindHorizontalRule Kind = "horizontal-rule"
	KindHyperlink      Kind = "hyperlink"
	KindEmbeddedMedia  Kind = "embedded-media"
	KindUnknown        Kind = "unknown"
)

// Mark is an inline style applied to a text node.
type Mark string

const (
	MarkBold      Mark = "bold"
	MarkItalic    Mark = "italic"
	MarkUnderline Mark = "underline"
	MarkCode      Mark = "code"
)

// Node is one element of a Document tree. The set of implementations is
// closed; see the Kind constants.
type Node interface {
	Kind() Kind
	isNode()
}

// container is implemented by every node that owns children.
type container interface {
	Node
	children() []Node
}

// Document is an ordered sequence of top-level nodes.
type Document struct {
	Nodes []Node
}

// Len returns the number of top-level nodes.
func (d Document) Len() int { return len(d.Nodes) }

// IsEmpty reports whether the document has no top-level nodes.
func (d Document) IsEmpty() bool { return len(d.Nodes) == 0 }

// Text is a leaf carrying a string and its marks in declared order.
type Text struct {
	Value string
	Marks []Mark
}

type Paragraph struct{ Children []Node }

// Heading levels outside 1..6 are clamped when rendered.
type Heading struct {
	Level    int
	Children []Node
}

type UnorderedList struct{ Children []Node }

type OrderedList struct{ Children []Node }

type ListItem struct{ Children []Node }

type Blockquote struct{ Children []Node }

type HorizontalRule struct{}

// Hyperlink points at URI; an empty URI renders as "#".
type Hyperlink struct {
	URI      string
	Children []Node
}

// EmbeddedMedia references an asset by ID.
type EmbeddedMedia struct {
	AssetID string
}

// Unknown keeps a node type this package has no rendering for, so its
// children still reach the output.
type Unknown struct {
	NodeType string
	Children []Node
}

func (Text) Kind() Kind           { return KindText }
func (Paragraph) Kind() Kind      { return KindParagraph }
func (Heading) Kind() Kind        { return KindHeading }
func (UnorderedList) Kind() Kind  { return KindUnorderedList }
func (OrderedList) Kind() Kind    { return KindOrderedList }
func (ListItem) Kind() Kind       { return KindListItem }
func (Blockquote) Kind() Kind     { return KindBlockquote }
func (HorizontalRule) Kind() Kind { return KindHorizontalRule }
func (Hyperlink) Kind() Kind      { return KindHyperlink }
func (EmbeddedMedia) Kind() Kind  { return KindEmbeddedMedia }
func (Unknown) Kind() Kind        { return KindUnknown }

func (Text) isNode()           {}
func (Paragraph) isNode()      {}
func (Heading) isNode()        {}
func (UnorderedList) isNode()  {}
func (OrderedList) isNode()    {}
func (ListItem) isNode()       {}
func (Blockquote) isNode()     {}
func (HorizontalRule) isNode() {}
func (Hyperlink) isNode()      {}
func (EmbeddedMedia) isNode()  {}
func (Unknown) isNode()        {}

func (n Paragraph) children() []Node     { return n.Children }
func (n Heading) children() []Node       { return n.Children }
func (n UnorderedList) children() []Node { return n.Children }
func (n OrderedList) children() []Node   { return n.Children }
func (n ListItem) children() []Node      { return n.Children }
func (n Blockquote) children() []Node    { return n.Children }
func (n Hyperlink) children() []Node     { return n.Children }
func (n Unknown) children() []Node       { return n.Children }
