// Package reorganizer sorts using directives and type members of a parsed C#
// file while keeping the comments attached to each item.
package reorganizer

import (
	"fmt"

	apperrors "github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/syntax"
)

// Options configures both orderings.
type Options struct {
	Members    MemberOptions
	Directives DirectiveOptions
}

// DefaultOptions sorts members alphabetically, case-insensitively, and keeps
// the preferred-prefix rule off.
func DefaultOptions() Options {
	return Options{
		Members:    MemberOptions{SortByAlphabet: true},
		Directives: DirectiveOptions{PreferredPrefix: DefaultPreferredPrefix},
	}
}

// Reorganizer applies the orderings to whole trees. It holds no per-tree
// state and is safe for concurrent use.
type Reorganizer struct {
	members    *MemberComparer
	directives *DirectiveComparer
}

// New creates a Reorganizer.
func New(opts Options) *Reorganizer {
	return &Reorganizer{
		members:    NewMemberComparer(opts.Members),
		directives: NewDirectiveComparer(opts.Directives),
	}
}

// Result describes one reorganization.
type Result struct {
	Tree            *syntax.Tree
	MovedDirectives int
	MovedMembers    int
	// SkippedScopes counts lists left alone because preprocessor directives
	// sit between their items.
	SkippedScopes int
	// CleanedScopes counts lists already in order whose blank-line padding
	// was normalized.
	CleanedScopes int
}

// Changed reports whether any item moved.
func (r Result) Changed() bool {
	return r.MovedDirectives > 0 || r.MovedMembers > 0 || r.CleanedScopes > 0
}

// Reorganize returns a reordered copy of tree. The input is not modified.
func (r *Reorganizer) Reorganize(tree *syntax.Tree) (Result, error) {
	if tree == nil || tree.Root < 0 || int(tree.Root) >= len(tree.Nodes) ||
		tree.Node(tree.Root).Kind != syntax.NodeCompilationUnit {
		return Result{}, apperrors.ErrUnexpectedRoot
	}

	out := tree.Clone()
	res := Result{Tree: out}
	r.visit(out, out.Root, &res)
	return res, nil
}

// ReorganizeText parses src, reorganizes it and prints the result.
func (r *Reorganizer) ReorganizeText(src string) (string, Result, error) {
	res, err := r.Reorganize(syntax.Parse(src))
	if err != nil {
		return "", res, fmt.Errorf("reorganize: %w", err)
	}
	return res.Tree.Print(), res, nil
}

// visit handles nested scopes before the lists owned by id.
func (r *Reorganizer) visit(tree *syntax.Tree, id syntax.NodeID, res *Result) {
	n := tree.Node(id)
	for _, child := range n.Children() {
		r.visit(tree, child, res)
	}

	for _, list := range n.Lists() {
		if len(list.Items) < 2 {
			continue
		}
		if !reorderable(tree, list) {
			res.SkippedScopes++
			continue
		}
		var moved int
		var cleaned bool
		switch list.Kind {
		case syntax.ListDirectives:
			moved, cleaned = r.sortDirectives(tree, list)
			res.MovedDirectives += moved
		case syntax.ListMembers:
			moved, cleaned = r.sortMembers(tree, list, DefaultAccess(n.Keyword))
			res.MovedMembers += moved
		}
		if cleaned {
			res.CleanedScopes++
		}
	}
}

func (r *Reorganizer) sortDirectives(tree *syntax.Tree, list *syntax.List) (int, bool) {
	infos := make([]DirectiveInfo, len(list.Items))
	for i, id := range list.Items {
		infos[i] = ClassifyDirective(tree, id)
	}
	r.directives.Sort(infos)

	sorted := make([]syntax.NodeID, len(infos))
	for i, info := range infos {
		sorted[i] = info.Node
	}
	return arrange(tree, list, sorted, false)
}

func (r *Reorganizer) sortMembers(tree *syntax.Tree, list *syntax.List, access AccessRank) (int, bool) {
	infos := make([]MemberInfo, len(list.Items))
	for i, id := range list.Items {
		infos[i] = ClassifyMember(tree, id, access)
	}
	r.members.Sort(infos)

	sorted := make([]syntax.NodeID, len(infos))
	for i, info := range infos {
		sorted[i] = info.Node
	}
	return arrange(tree, list, sorted, true)
}
