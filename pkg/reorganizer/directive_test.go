package reorganizer

import (
	"testing"

	"github.com/MrSimonC/SharpAlignment/pkg/syntax"
	"github.com/stretchr/testify/require"
)

func TestClassifyDirective(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want DirectiveInfo
	}{
		{"plain", "using System.Text;", DirectiveInfo{TargetName: "System.Text"}},
		{"static", "using static System.Math;", DirectiveInfo{TargetName: "System.Math", IsStatic: true}},
		{"global", "global using Xunit;", DirectiveInfo{TargetName: "Xunit", IsGlobal: true}},
		{"global static", "global using static System.Console;", DirectiveInfo{TargetName: "System.Console", IsGlobal: true, IsStatic: true}},
		{"alias", "using Json = Newtonsoft.Json;", DirectiveInfo{TargetName: "Newtonsoft.Json", Alias: "Json"}},
		{"generic alias", "using Map = System.Collections.Generic.Dictionary<string, int>;", DirectiveInfo{TargetName: "System.Collections.Generic.Dictionary<string, int>", Alias: "Map"}},
		{"extern alias qualified", "using global::System;", DirectiveInfo{TargetName: "global::System"}},
		{"empty", "using ;", DirectiveInfo{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			tree := syntax.Parse(tt.src + "\n")
			root := tree.Node(tree.Root)
			lists := root.Lists()
			req.Len(lists, 1)
			req.Len(lists[0].Items, 1)

			got := ClassifyDirective(tree, lists[0].Items[0])
			req.Equal(tt.want.TargetName, got.TargetName)
			req.Equal(tt.want.Alias, got.Alias)
			req.Equal(tt.want.IsStatic, got.IsStatic)
			req.Equal(tt.want.IsGlobal, got.IsGlobal)
			req.Equal(tt.want.Alias != "", got.HasAlias())
		})
	}
}
