package reorganizer

import (
	"sort"
	"strings"
)

// compareFunc returns a negative number when a sorts before b, a positive
// number when it sorts after and zero on a tie.
type compareFunc[T any] func(a, b *T) int

// chain evaluates keys left to right and returns the first non-zero result.
// A nil operand sorts before a present one; two nils are equal.
func chain[T any](a, b *T, keys []compareFunc[T]) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	for _, key := range keys {
		if r := key(a, b); r != 0 {
			return r
		}
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareFlags orders true before false.
func compareFlags(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	}
	return 1
}

// MemberOptions controls the member ordering.
type MemberOptions struct {
	SortByAlphabet bool
	CaseSensitive  bool
	// KindOrder ranks member kinds; kinds missing from it sort after the
	// listed ones in their default order. Empty means DefaultMemberOrder.
	KindOrder []MemberKind
}

// MemberComparer orders MemberInfo values by kind, access, modifier and,
// optionally, identifier.
type MemberComparer struct {
	keys     []compareFunc[MemberInfo]
	kindRank map[MemberKind]int
}

// NewMemberComparer builds the comparer described by opts.
func NewMemberComparer(opts MemberOptions) *MemberComparer {
	c := &MemberComparer{kindRank: kindRanks(opts.KindOrder)}
	c.keys = []compareFunc[MemberInfo]{
		func(a, b *MemberInfo) int { return compareInts(c.kindRank[a.Kind], c.kindRank[b.Kind]) },
		func(a, b *MemberInfo) int { return compareInts(int(a.AccessRank), int(b.AccessRank)) },
		func(a, b *MemberInfo) int { return compareInts(int(a.ModifierRank), int(b.ModifierRank)) },
	}
	if opts.SortByAlphabet {
		if opts.CaseSensitive {
			c.keys = append(c.keys, func(a, b *MemberInfo) int { return strings.Compare(a.Identifier, b.Identifier) })
		} else {
			c.keys = append(c.keys, func(a, b *MemberInfo) int {
				return strings.Compare(strings.ToUpper(a.Identifier), strings.ToUpper(b.Identifier))
			})
		}
	}
	return c
}

func kindRanks(order []MemberKind) map[MemberKind]int {
	ranks := make(map[MemberKind]int, len(memberKindNames))
	for _, k := range order {
		if _, ok := ranks[k]; !ok {
			ranks[k] = len(ranks)
		}
	}
	for _, k := range DefaultMemberOrder() {
		if _, ok := ranks[k]; !ok {
			ranks[k] = len(ranks)
		}
	}
	return ranks
}

// Compare orders two members.
func (c *MemberComparer) Compare(a, b *MemberInfo) int {
	return chain(a, b, c.keys)
}

// Sort stably sorts members in place.
func (c *MemberComparer) Sort(members []MemberInfo) {
	sort.SliceStable(members, func(i, j int) bool {
		return c.Compare(&members[i], &members[j]) < 0
	})
}

// DefaultPreferredPrefix is the namespace prefix moved to the top when
// PreferredPrefixFirst is set.
const DefaultPreferredPrefix = "System"

// DirectiveOptions controls the directive ordering.
type DirectiveOptions struct {
	PreferredPrefixFirst bool
	PreferredPrefix      string
}

// DirectiveComparer orders DirectiveInfo values: global, then static, then
// plain before aliased, then the preferred prefix, then the target name.
type DirectiveComparer struct {
	keys []compareFunc[DirectiveInfo]
}

// NewDirectiveComparer builds the comparer described by opts.
func NewDirectiveComparer(opts DirectiveOptions) *DirectiveComparer {
	keys := []compareFunc[DirectiveInfo]{
		func(a, b *DirectiveInfo) int { return compareFlags(a.IsGlobal, b.IsGlobal) },
		func(a, b *DirectiveInfo) int { return compareFlags(a.IsStatic, b.IsStatic) },
		func(a, b *DirectiveInfo) int { return compareFlags(!a.HasAlias(), !b.HasAlias()) },
	}
	if opts.PreferredPrefixFirst {
		prefix := opts.PreferredPrefix
		if prefix == "" {
			prefix = DefaultPreferredPrefix
		}
		keys = append(keys, func(a, b *DirectiveInfo) int {
			return compareFlags(strings.HasPrefix(a.TargetName, prefix), strings.HasPrefix(b.TargetName, prefix))
		})
	}
	keys = append(keys, func(a, b *DirectiveInfo) int { return strings.Compare(a.TargetName, b.TargetName) })
	return &DirectiveComparer{keys: keys}
}

// Compare orders two directives.
func (c *DirectiveComparer) Compare(a, b *DirectiveInfo) int {
	return chain(a, b, c.keys)
}

// Sort stably sorts directives in place.
func (c *DirectiveComparer) Sort(directives []DirectiveInfo) {
	sort.SliceStable(directives, func(i, j int) bool {
		return c.Compare(&directives[i], &directives[j]) < 0
	})
}
