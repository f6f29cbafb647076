package reorganizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleMembers() []MemberInfo {
	return []MemberInfo{
		{Kind: KindMethod, AccessRank: AccessPublic, ModifierRank: ModifierNone, Identifier: "run"},
		{Kind: KindMethod, AccessRank: AccessPublic, ModifierRank: ModifierNone, Identifier: "Run"},
		{Kind: KindField, AccessRank: AccessPrivate, ModifierRank: ModifierReadonly, Identifier: "b"},
		{Kind: KindField, AccessRank: AccessPrivate, ModifierRank: ModifierStatic, Identifier: "B"},
		{Kind: KindField, AccessRank: AccessPublic, ModifierRank: ModifierNone, Identifier: "a"},
		{Kind: KindConstant, AccessRank: AccessPrivate, ModifierRank: ModifierConst, Identifier: "Z"},
		{Kind: KindOperator, AccessRank: AccessPublic, ModifierRank: ModifierStatic},
		{Kind: KindNestedType, AccessRank: AccessInternal, ModifierRank: ModifierNone, Identifier: "Inner"},
		{Kind: KindProperty, AccessRank: AccessProtected, ModifierRank: ModifierVirtual, Identifier: "Name"},
	}
}

func sampleDirectives() []DirectiveInfo {
	return []DirectiveInfo{
		{TargetName: "Zeta"},
		{TargetName: "System"},
		{TargetName: "System.IO"},
		{TargetName: "Alpha"},
		{TargetName: "System.Math", IsStatic: true},
		{TargetName: "Xunit", IsGlobal: true},
		{TargetName: "Newtonsoft.Json", Alias: "Json"},
		{TargetName: ""},
	}
}

func TestMemberComparer_Keys(t *testing.T) {
	tests := []struct {
		name string
		opts MemberOptions
		a, b MemberInfo
		want int
	}{
		{"kind wins", MemberOptions{}, MemberInfo{Kind: KindField, AccessRank: AccessPrivate}, MemberInfo{Kind: KindMethod}, -1},
		{"access next", MemberOptions{}, MemberInfo{Kind: KindField, AccessRank: AccessPrivate}, MemberInfo{Kind: KindField, AccessRank: AccessInternal}, 1},
		{"modifier next", MemberOptions{}, MemberInfo{Kind: KindField, ModifierRank: ModifierStatic}, MemberInfo{Kind: KindField, ModifierRank: ModifierReadonly}, -1},
		{"identifier ignored when disabled", MemberOptions{}, MemberInfo{Identifier: "b"}, MemberInfo{Identifier: "a"}, 0},
		{"identifier case-insensitive", MemberOptions{SortByAlphabet: true}, MemberInfo{Identifier: "a"}, MemberInfo{Identifier: "B"}, -1},
		{"identifier equal ignoring case", MemberOptions{SortByAlphabet: true}, MemberInfo{Identifier: "name"}, MemberInfo{Identifier: "Name"}, 0},
		{"identifier case-sensitive", MemberOptions{SortByAlphabet: true, CaseSensitive: true}, MemberInfo{Identifier: "a"}, MemberInfo{Identifier: "B"}, 1},
		{"empty identifiers tie", MemberOptions{SortByAlphabet: true}, MemberInfo{Kind: KindOperator}, MemberInfo{Kind: KindOperator}, 0},
		{"custom kind order", MemberOptions{KindOrder: []MemberKind{KindMethod, KindField}}, MemberInfo{Kind: KindMethod}, MemberInfo{Kind: KindField}, -1},
		{"unlisted kinds after listed", MemberOptions{KindOrder: []MemberKind{KindMethod}}, MemberInfo{Kind: KindConstant}, MemberInfo{Kind: KindMethod}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			c := NewMemberComparer(tt.opts)
			req.Equal(tt.want, sign(c.Compare(&tt.a, &tt.b)))
			req.Equal(-tt.want, sign(c.Compare(&tt.b, &tt.a)))
		})
	}
}

func TestComparers_NilSortsFirst(t *testing.T) {
	req := require.New(t)

	mc := NewMemberComparer(MemberOptions{SortByAlphabet: true})
	m := &MemberInfo{Kind: KindConstant}
	req.Equal(-1, mc.Compare(nil, m))
	req.Equal(1, mc.Compare(m, nil))
	req.Equal(0, mc.Compare(nil, nil))

	dc := NewDirectiveComparer(DirectiveOptions{})
	d := &DirectiveInfo{}
	req.Equal(-1, dc.Compare(nil, d))
	req.Equal(1, dc.Compare(d, nil))
	req.Equal(0, dc.Compare(nil, nil))
}

func TestMemberComparer_TotalOrder(t *testing.T) {
	for _, opts := range []MemberOptions{{}, {SortByAlphabet: true}, {SortByAlphabet: true, CaseSensitive: true}} {
		c := NewMemberComparer(opts)
		items := sampleMembers()
		for i := range items {
			for j := range items {
				require.Equal(t, sign(c.Compare(&items[i], &items[j])), -sign(c.Compare(&items[j], &items[i])), "antisymmetry %d %d", i, j)
				for k := range items {
					if c.Compare(&items[i], &items[j]) <= 0 && c.Compare(&items[j], &items[k]) <= 0 {
						require.LessOrEqual(t, c.Compare(&items[i], &items[k]), 0, "transitivity %d %d %d", i, j, k)
					}
				}
			}
		}
	}
}

func TestDirectiveComparer_TotalOrder(t *testing.T) {
	for _, opts := range []DirectiveOptions{{}, {PreferredPrefixFirst: true}, {PreferredPrefixFirst: true, PreferredPrefix: "Xunit"}} {
		c := NewDirectiveComparer(opts)
		items := sampleDirectives()
		for i := range items {
			for j := range items {
				require.Equal(t, sign(c.Compare(&items[i], &items[j])), -sign(c.Compare(&items[j], &items[i])), "antisymmetry %d %d", i, j)
				for k := range items {
					if c.Compare(&items[i], &items[j]) <= 0 && c.Compare(&items[j], &items[k]) <= 0 {
						require.LessOrEqual(t, c.Compare(&items[i], &items[k]), 0, "transitivity %d %d %d", i, j, k)
					}
				}
			}
		}
	}
}

func TestMemberComparer_SortIsStable(t *testing.T) {
	req := require.New(t)
	members := []MemberInfo{
		{Kind: KindOperator, Node: 3},
		{Kind: KindField, Identifier: "x", Node: 0},
		{Kind: KindOperator, Node: 1},
		{Kind: KindOperator, Node: 2},
	}
	NewMemberComparer(MemberOptions{SortByAlphabet: true}).Sort(members)

	var order []int
	for _, m := range members {
		order = append(order, int(m.Node))
	}
	req.Equal([]int{0, 3, 1, 2}, order)
}

func TestDirectiveComparer_Sort(t *testing.T) {
	tests := []struct {
		name string
		opts DirectiveOptions
		want []string
	}{
		{
			name: "default",
			opts: DirectiveOptions{},
			want: []string{"Xunit", "System.Math", "", "Alpha", "System", "System.IO", "Zeta", "Newtonsoft.Json"},
		},
		{
			name: "system first",
			opts: DirectiveOptions{PreferredPrefixFirst: true},
			want: []string{"Xunit", "System.Math", "System", "System.IO", "", "Alpha", "Zeta", "Newtonsoft.Json"},
		},
		{
			name: "custom prefix",
			opts: DirectiveOptions{PreferredPrefixFirst: true, PreferredPrefix: "Ze"},
			want: []string{"Xunit", "System.Math", "Zeta", "", "Alpha", "System", "System.IO", "Newtonsoft.Json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			items := sampleDirectives()
			NewDirectiveComparer(tt.opts).Sort(items)

			var got []string
			for _, d := range items {
				got = append(got, d.TargetName)
			}
			req.Equal(tt.want, got)
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
