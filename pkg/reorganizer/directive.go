package reorganizer

import "github.com/MrSimonC/SharpAlignment/pkg/syntax"

// DirectiveInfo holds the comparable attributes of one using directive.
type DirectiveInfo struct {
	TargetName string // imported namespace or type, "" if unparseable
	Alias      string // alias name, empty if no alias
	IsStatic   bool
	IsGlobal   bool

	Node    syntax.NodeID
	Leading string
}

// HasAlias reports whether the directive declares an alias.
func (d *DirectiveInfo) HasAlias() bool {
	return d.Alias != ""
}

// ClassifyDirective extracts the attributes of a using-directive node.
// Malformed directives degrade to empty values instead of failing.
func ClassifyDirective(tree *syntax.Tree, id syntax.NodeID) DirectiveInfo {
	n := tree.Node(id)
	info := DirectiveInfo{Node: id, Leading: n.Leading}

	head := n.Head
	i, end := 0, len(head)
	if end > 0 && head[end-1].Text == ";" {
		end--
	}
	if i < end && head[i].Text == "global" {
		info.IsGlobal = true
		i++
	}
	if i < end && head[i].Text == "using" {
		i++
	}
	if i < end && head[i].Text == "static" {
		info.IsStatic = true
		i++
	}
	if end-i >= 2 && head[i].Kind == syntax.TokenIdentifier && head[i+1].Text == "=" {
		info.Alias = head[i].Text
		i += 2
	}
	if i < end {
		info.TargetName = tree.Text(head[i], head[end-1])
	}
	return info
}
