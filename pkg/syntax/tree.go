// Package syntax is a lossless structural model of C# source files. It knows
// just enough of the grammar to find using-directive lists and type member
// lists; everything else is kept as opaque text.
package syntax

import "strings"

// NodeID addresses a node in a Tree's arena.
type NodeID int

// NoNode is the zero value for an absent node reference.
const NoNode NodeID = -1

// NodeKind is the structural category of a node.
type NodeKind int

const (
	NodeCompilationUnit NodeKind = iota
	NodeUsingDirective
	NodeNamespace
	NodeTypeDeclaration
	NodeMember
	NodeOpaque
)

func (k NodeKind) String() string {
	switch k {
	case NodeCompilationUnit:
		return "compilation-unit"
	case NodeUsingDirective:
		return "using-directive"
	case NodeNamespace:
		return "namespace"
	case NodeTypeDeclaration:
		return "type-declaration"
	case NodeMember:
		return "member"
	case NodeOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// TypeKeyword names the declaration keyword of a type node.
type TypeKeyword string

const (
	KeywordClass     TypeKeyword = "class"
	KeywordStruct    TypeKeyword = "struct"
	KeywordInterface TypeKeyword = "interface"
	KeywordRecord    TypeKeyword = "record"
	KeywordEnum      TypeKeyword = "enum"
)

// SegmentKind tells which field of a Segment is populated.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentNode
	SegmentList
)

// ListKind distinguishes the two reorderable containers.
type ListKind int

const (
	ListDirectives ListKind = iota
	ListMembers
)

// List is an ordered, reorderable run of sibling nodes.
type List struct {
	Kind  ListKind
	Items []NodeID
}

// Segment is one piece of a node's body.
type Segment struct {
	Kind SegmentKind
	Text string
	Node NodeID
	List *List
}

// Node is one element of the arena. Printing a node yields
// Leading + segments + Trailing.
type Node struct {
	Kind     NodeKind
	Leading  string
	Segments []Segment
	Trailing string

	// Head holds the significant tokens of the declaration head: the whole
	// member for plain members, everything before the body brace for types
	// and namespaces.
	Head []Token

	// Keyword and Name are set for type declarations.
	Keyword TypeKeyword
	Name    string
}

// Tree is an arena of nodes over one source text.
type Tree struct {
	Source string
	Nodes  []Node
	Root   NodeID
}

// Node returns a pointer to the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

// Text returns the source text covered by the tokens from first to last,
// including any trivia between them.
func (t *Tree) Text(first, last Token) string {
	if last.End() < first.Offset {
		return ""
	}
	return t.Source[first.Offset:last.End()]
}

// Clone returns a copy whose nodes, segments and lists can be modified
// without affecting t. Token slices are shared since they are never mutated.
func (t *Tree) Clone() *Tree {
	out := &Tree{Source: t.Source, Root: t.Root, Nodes: make([]Node, len(t.Nodes))}
	for i, n := range t.Nodes {
		segs := make([]Segment, len(n.Segments))
		for j, s := range n.Segments {
			if s.List != nil {
				items := make([]NodeID, len(s.List.Items))
				copy(items, s.List.Items)
				s.List = &List{Kind: s.List.Kind, Items: items}
			}
			segs[j] = s
		}
		n.Segments = segs
		out.Nodes[i] = n
	}
	return out
}

// Print renders the whole tree.
func (t *Tree) Print() string {
	var sb strings.Builder
	sb.Grow(len(t.Source))
	t.PrintNode(&sb, t.Root)
	return sb.String()
}

// PrintNode renders one node and its descendants into sb.
func (t *Tree) PrintNode(sb *strings.Builder, id NodeID) {
	n := &t.Nodes[id]
	sb.WriteString(n.Leading)
	for _, s := range n.Segments {
		switch s.Kind {
		case SegmentText:
			sb.WriteString(s.Text)
		case SegmentNode:
			t.PrintNode(sb, s.Node)
		case SegmentList:
			for _, item := range s.List.Items {
				t.PrintNode(sb, item)
			}
		}
	}
	sb.WriteString(n.Trailing)
}

// NodeString renders a single node.
func (t *Tree) NodeString(id NodeID) string {
	var sb strings.Builder
	t.PrintNode(&sb, id)
	return sb.String()
}

// Lists returns the lists directly owned by the node, in print order.
func (n *Node) Lists() []*List {
	var out []*List
	for _, s := range n.Segments {
		if s.Kind == SegmentList {
			out = append(out, s.List)
		}
	}
	return out
}

// Children returns every node directly referenced by the node's segments,
// list items included, in print order.
func (n *Node) Children() []NodeID {
	var out []NodeID
	for _, s := range n.Segments {
		switch s.Kind {
		case SegmentNode:
			out = append(out, s.Node)
		case SegmentList:
			out = append(out, s.List.Items...)
		}
	}
	return out
}
