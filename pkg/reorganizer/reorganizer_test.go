package reorganizer

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/syntax"
	"github.com/stretchr/testify/require"
)

func reorganize(t *testing.T, opts Options, src string) (string, Result) {
	t.Helper()
	out, res, err := New(opts).ReorganizeText(src)
	require.NoError(t, err)
	return out, res
}

func TestReorganizeText(t *testing.T) {
	systemFirst := DefaultOptions()
	systemFirst.Directives.PreferredPrefixFirst = true

	caseSensitive := DefaultOptions()
	caseSensitive.Members.CaseSensitive = true

	declarationOrder := DefaultOptions()
	declarationOrder.Members.SortByAlphabet = false

	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{
			name: "usings default",
			opts: DefaultOptions(),
			in:   "using Zeta;\nusing System;\nusing Alpha;\n\nclass C {}\n",
			want: "using Alpha;\nusing System;\nusing Zeta;\n\nclass C {}\n",
		},
		{
			name: "usings system first",
			opts: systemFirst,
			in:   "using Zeta;\nusing System;\nusing Alpha;\n\nclass C {}\n",
			want: "using System;\nusing Alpha;\nusing Zeta;\n\nclass C {}\n",
		},
		{
			name: "members case-insensitive",
			opts: DefaultOptions(),
			in:   "class C { private int B; private int a; }",
			want: "class C { private int a; private int B; }",
		},
		{
			name: "members case-sensitive",
			opts: caseSensitive,
			in:   "class C { private int B; private int a; }",
			want: "class C { private int B; private int a; }",
		},
		{
			name: "members by kind with alphabet off",
			opts: declarationOrder,
			in:   "class C\n{\n    void M() { }\n\n    int b;\n\n    int a;\n}\n",
			want: "class C\n{\n    int b;\n\n    int a;\n\n    void M() { }\n}\n",
		},
		{
			name: "static and alias usings",
			opts: DefaultOptions(),
			in:   "using J = Newtonsoft.Json;\nusing static System.Math;\nusing Beta;\nglobal using Alpha;\n",
			want: "global using Alpha;\nusing static System.Math;\nusing Beta;\nusing J = Newtonsoft.Json;\n",
		},
		{
			name: "comments travel with members",
			opts: DefaultOptions(),
			in: "class C\n{\n    // about b\n    int b;\n\n    /// <summary>about a</summary>\n    int a;\n}\n",
			want: "class C\n{\n    /// <summary>about a</summary>\n    int a;\n\n    // about b\n    int b;\n}\n",
		},
		{
			name: "blank line inserted for moved member",
			opts: DefaultOptions(),
			in:   "class C\n{\n    void M() { }\n    int a;\n}\n",
			want: "class C\n{\n    int a;\n\n    void M() { }\n}\n",
		},
		{
			name: "blank runs collapsed",
			opts: DefaultOptions(),
			in:   "class C\n{\n    int c;\n\n\n\n    int b;\n\n    int a;\n}\n",
			want: "class C\n{\n    int a;\n\n    int b;\n\n    int c;\n}\n",
		},
		{
			name: "blank runs collapsed without reordering",
			opts: DefaultOptions(),
			in:   "class C\n{\n    private int a;\n\n\n\n    private int b;\n}\n",
			want: "class C\n{\n    private int a;\n\n    private int b;\n}\n",
		},
		{
			name: "blank lines above the first using removed without reordering",
			opts: DefaultOptions(),
			in:   "\n\nusing Alpha;\n\n\nusing Beta;\n",
			want: "using Alpha;\n\nusing Beta;\n",
		},
		{
			name: "member moved to the top loses its blank lines",
			opts: DefaultOptions(),
			in:   "class C\n{\n\n    int b;\n\n\n    int a;\n}\n",
			want: "class C\n{\n    int a;\n\n    int b;\n}\n",
		},
		{
			name: "file banner stays on top",
			opts: DefaultOptions(),
			in:   "// Copyright\n\nusing Zeta;\nusing Alpha;\n",
			want: "// Copyright\n\nusing Alpha;\nusing Zeta;\n",
		},
		{
			name: "comment attached to first using travels",
			opts: DefaultOptions(),
			in:   "// banner\n\n// zeta note\nusing Zeta;\nusing Alpha;\n",
			want: "// banner\n\nusing Alpha;\n// zeta note\nusing Zeta;\n",
		},
		{
			name: "nested types and namespaces",
			opts: DefaultOptions(),
			in: "namespace N\n{\n    using Zeta;\n    using Alpha;\n\n    class Outer\n    {\n        class Inner\n        {\n            int y;\n            int x;\n        }\n\n        int z;\n    }\n}\n",
			want: "namespace N\n{\n    using Alpha;\n    using Zeta;\n\n    class Outer\n    {\n        int z;\n\n        class Inner\n        {\n            int x;\n\n            int y;\n        }\n    }\n}\n",
		},
		{
			name: "file-scoped namespace",
			opts: DefaultOptions(),
			in:   "namespace N;\n\npublic class C\n{\n    public void B() { }\n\n    public void A() { }\n}\n",
			want: "namespace N;\n\npublic class C\n{\n    public void A() { }\n\n    public void B() { }\n}\n",
		},
		{
			name: "last line without newline",
			opts: DefaultOptions(),
			in:   "using Beta;\nusing Alpha;",
			want: "using Alpha;\nusing Beta;",
		},
		{
			name: "crlf line endings",
			opts: DefaultOptions(),
			in:   "class C\r\n{\r\n    void M() { }\r\n    int a;\r\n}\r\n",
			want: "class C\r\n{\r\n    int a;\r\n\r\n    void M() { }\r\n}\r\n",
		},
		{
			name: "preprocessor between members is left alone",
			opts: DefaultOptions(),
			in:   "class C\n{\n    int b;\n#if DEBUG\n    int a;\n#endif\n}\n",
			want: "class C\n{\n    int b;\n#if DEBUG\n    int a;\n#endif\n}\n",
		},
		{
			name: "enum bodies are not reordered",
			opts: DefaultOptions(),
			in:   "enum E\n{\n    Z,\n    A,\n}\n",
			want: "enum E\n{\n    Z,\n    A,\n}\n",
		},
		{
			name: "interface members",
			opts: DefaultOptions(),
			in:   "interface I\n{\n    void Run();\n    int Count { get; }\n}\n",
			want: "interface I\n{\n    int Count { get; }\n\n    void Run();\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, _ := reorganize(t, tt.opts, tt.in)
			req.Equal(tt.want, got)

			again, res := reorganize(t, tt.opts, got)
			req.Equal(got, again, "second pass must not change the output")
			req.False(res.Changed())
		})
	}
}

func TestReorganize_Stats(t *testing.T) {
	req := require.New(t)
	_, res := reorganize(t, DefaultOptions(), "using B;\nusing A;\n\nclass C\n{\n    int b;\n    int a;\n#if X\n#endif\n}\n\nclass D\n{\n    int y;\n#if X\n    int x;\n#endif\n}\n")
	req.Equal(2, res.MovedDirectives)
	req.Equal(2, res.MovedMembers)
	req.Equal(1, res.SkippedScopes)
	req.True(res.Changed())
}

func TestReorganize_CleanedScopes(t *testing.T) {
	req := require.New(t)
	_, res := reorganize(t, DefaultOptions(), "using A;\nusing B;\n\nclass C\n{\n    int a;\n\n\n    int b;\n}\n")
	req.Zero(res.MovedDirectives)
	req.Zero(res.MovedMembers)
	req.Equal(1, res.CleanedScopes)
	req.True(res.Changed())
}

func TestReorganize_DoesNotModifyInput(t *testing.T) {
	req := require.New(t)
	src := "class C { int b; int a; }"
	tree := syntax.Parse(src)

	res, err := New(DefaultOptions()).Reorganize(tree)
	req.NoError(err)
	req.Equal(src, tree.Print())
	req.Equal("class C { int a; int b; }", res.Tree.Print())
}

func TestReorganize_UnexpectedRoot(t *testing.T) {
	req := require.New(t)
	r := New(DefaultOptions())

	_, err := r.Reorganize(nil)
	req.True(errors.Is(err, apperrors.ErrUnexpectedRoot))

	tree := syntax.Parse("class C { }")
	tree.Root = tree.Nodes[tree.Root].Children()[0]
	_, err = r.Reorganize(tree)
	req.True(errors.Is(err, apperrors.ErrUnexpectedRoot))
}

func TestReorganize_NoOpIsByteExact(t *testing.T) {
	req := require.New(t)
	src := strings.Join([]string{
		"// header",
		"using System;",
		"",
		"namespace N",
		"{",
		"    /* keep */ public class C",
		"    {",
		"        public const int A = 1;",
		"",
		"        private readonly string _b = $\"{A} }}\";",
		"",
		"        public C() { }",
		"",
		"        public string Name { get; } = @\"x\"\"y\";",
		"",
		"        public void Run() { var s = \"\"\"raw { \"\"\"; }",
		"    }",
		"}",
		"",
	}, "\n")

	out, res := reorganize(t, DefaultOptions(), src)
	req.Equal(src, out)
	req.False(res.Changed())
}
