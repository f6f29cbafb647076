package syntax

import "strings"

var modifierKeywords = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"readonly":  true,
	"const":     true,
	"volatile":  true,
	"abstract":  true,
	"virtual":   true,
	"override":  true,
	"sealed":    true,
	"new":       true,
	"extern":    true,
	"unsafe":    true,
	"async":     true,
	"partial":   true,
	"required":  true,
	"file":      true,
	"fixed":     true,
	"ref":       true,
	"scoped":    true,
}

// IsModifier reports whether text is a declaration modifier keyword.
func IsModifier(text string) bool {
	return modifierKeywords[text]
}

type parser struct {
	toks []Token
	pos  int
	tree *Tree
}

// Parse builds the structural tree of src. It never fails: text it does not
// understand becomes opaque nodes, so Print always reproduces src.
func Parse(src string) *Tree {
	p := &parser{toks: Lex(src), tree: &Tree{Source: src}}
	root := p.tree.add(Node{Kind: NodeCompilationUnit})

	segs := p.parseScope(false)
	if rest := p.skipTrivia(); rest != "" {
		segs = append(segs, textSegment(rest))
	}
	p.tree.Nodes[root].Segments = segs
	p.tree.Root = root
	return p.tree
}

func textSegment(text string) Segment {
	return Segment{Kind: SegmentText, Text: text, Node: NoNode}
}

func nodeSegment(id NodeID) Segment {
	return Segment{Kind: SegmentNode, Node: id}
}

func (p *parser) at(i int) Token {
	if i < 0 || i >= len(p.toks) {
		return Token{Kind: TokenWhitespace}
	}
	return p.toks[i]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

// nextSig returns the index of the first significant token after i.
func (p *parser) nextSig(i int) int {
	for i++; i < len(p.toks) && p.toks[i].IsTrivia(); i++ {
	}
	return i
}

func (p *parser) join(from, to int) string {
	if from >= to {
		return ""
	}
	return p.tree.Source[p.toks[from].Offset:p.toks[to-1].End()]
}

func (p *parser) significant(from, to int) []Token {
	var out []Token
	for i := from; i < to; i++ {
		if !p.toks[i].IsTrivia() {
			out = append(out, p.toks[i])
		}
	}
	return out
}

// skipTrivia consumes trivia tokens and returns their text.
func (p *parser) skipTrivia() string {
	start := p.pos
	for p.pos < len(p.toks) && p.toks[p.pos].IsTrivia() {
		p.pos++
	}
	return p.join(start, p.pos)
}

// trailing consumes the trivia that belongs to the token just before pos:
// whitespace and comments up to and including the first newline. When no
// newline comes before the next significant token, all of it is trailing.
func (p *parser) trailing() string {
	start := p.pos
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if !t.IsTrivia() || t.Kind == TokenDirective {
			break
		}
		p.pos++
		if t.Kind == TokenNewline {
			break
		}
	}
	return p.join(start, p.pos)
}

// parseScope parses file-level or namespace-level items until the end of
// input or, when braced, an unmatched closing brace. On return pos points at
// the trivia before that brace or the end.
func (p *parser) parseScope(braced bool) []Segment {
	var segs []Segment
	for {
		mark := p.pos
		lead := p.skipTrivia()
		if p.eof() || (braced && p.at(p.pos).Is("}")) {
			p.pos = mark
			return segs
		}

		switch {
		case p.atUsingDirective():
			id := p.simple(NodeUsingDirective, lead, p.itemEnd(p.pos))
			segs = appendDirective(segs, id)
		case p.at(p.pos).Is("namespace"):
			segs = append(segs, nodeSegment(p.parseNamespace(lead)))
		case p.atGlobalAttribute():
			segs = append(segs, nodeSegment(p.simple(NodeOpaque, lead, p.bracketEnd(p.pos))))
		case p.atTypeDeclaration():
			segs = append(segs, nodeSegment(p.parseType(lead)))
		default:
			segs = append(segs, nodeSegment(p.simple(NodeOpaque, lead, p.itemEnd(p.pos))))
		}
	}
}

func appendDirective(segs []Segment, id NodeID) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Kind == SegmentList && segs[n-1].List.Kind == ListDirectives {
		segs[n-1].List.Items = append(segs[n-1].List.Items, id)
		return segs
	}
	return append(segs, Segment{Kind: SegmentList, Node: NoNode, List: &List{Kind: ListDirectives, Items: []NodeID{id}}})
}

// parseMembers parses the body of a type up to its closing brace.
func (p *parser) parseMembers() []NodeID {
	var items []NodeID
	for {
		mark := p.pos
		lead := p.skipTrivia()
		if p.eof() || p.at(p.pos).Is("}") {
			p.pos = mark
			return items
		}

		if p.atTypeDeclaration() {
			items = append(items, p.parseType(lead))
			continue
		}
		items = append(items, p.simple(NodeMember, lead, p.itemEnd(p.pos)))
	}
}

func (p *parser) simple(kind NodeKind, lead string, end int) NodeID {
	start := p.pos
	n := Node{
		Kind:     kind,
		Leading:  lead,
		Segments: []Segment{textSegment(p.join(start, end))},
		Head:     p.significant(start, end),
	}
	p.pos = end
	n.Trailing = p.trailing()
	return p.tree.add(n)
}

// closeBrace consumes the trivia and closing brace of a block, plus a
// stray semicolon after it, and returns their text.
func (p *parser) closeBrace() string {
	var sb strings.Builder
	sb.WriteString(p.skipTrivia())
	if p.at(p.pos).Is("}") {
		sb.WriteString(p.toks[p.pos].Text)
		p.pos++
	}
	if next := p.nextSig(p.pos - 1); p.at(next).Is(";") {
		sb.WriteString(p.join(p.pos, next+1))
		p.pos = next + 1
	}
	return sb.String()
}

func (p *parser) parseNamespace(lead string) NodeID {
	start := p.pos
	i := start
	for ; i < len(p.toks); i = p.nextSig(i) {
		if t := p.toks[i]; t.Is("{") || t.Is(";") || (i > start && t.Is("}")) {
			break
		}
	}

	n := Node{Kind: NodeNamespace, Leading: lead, Head: p.significant(start, i)}
	switch {
	case p.at(i).Is("{"):
		p.pos = i + 1
		n.Segments = append(n.Segments, textSegment(p.join(start, i+1)+p.trailing()))
		n.Segments = append(n.Segments, p.parseScope(true)...)
		n.Segments = append(n.Segments, textSegment(p.closeBrace()))
		n.Trailing = p.trailing()
	case p.at(i).Is(";"):
		p.pos = i + 1
		n.Segments = append(n.Segments, textSegment(p.join(start, i+1)+p.trailing()))
		n.Segments = append(n.Segments, p.parseScope(false)...)
	default:
		p.pos = i
		n.Segments = append(n.Segments, textSegment(p.join(start, i)))
		n.Trailing = p.trailing()
	}
	return p.tree.add(n)
}

func (p *parser) parseType(lead string) NodeID {
	start := p.pos
	keyword, name := p.typeHeader(start)

	depth := 0
	i := start
	for ; i < len(p.toks); i = p.nextSig(i) {
		t := p.toks[i]
		switch {
		case t.Is("(") || t.Is("["):
			depth++
		case t.Is(")") || t.Is("]"):
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && (t.Is("{") || t.Is(";") || t.Is("}")) {
			break
		}
	}

	n := Node{Kind: NodeTypeDeclaration, Leading: lead, Head: p.significant(start, i), Keyword: keyword, Name: name}
	switch {
	case p.at(i).Is("{") && keyword == KeywordEnum:
		end := p.matchBrace(i)
		p.pos = end
		n.Segments = []Segment{textSegment(p.join(start, end))}
		if next := p.nextSig(end - 1); p.at(next).Is(";") {
			n.Segments[0].Text += p.join(end, next+1)
			p.pos = next + 1
		}
	case p.at(i).Is("{"):
		p.pos = i + 1
		header := p.join(start, i+1) + p.trailing()
		items := p.parseMembers()
		n.Segments = []Segment{
			textSegment(header),
			{Kind: SegmentList, Node: NoNode, List: &List{Kind: ListMembers, Items: items}},
			textSegment(p.closeBrace()),
		}
	case p.at(i).Is(";"):
		p.pos = i + 1
		n.Segments = []Segment{textSegment(p.join(start, i+1))}
	default:
		p.pos = i
		n.Segments = []Segment{textSegment(p.join(start, i))}
	}
	n.Trailing = p.trailing()
	return p.tree.add(n)
}

// matchBrace returns the index just past the brace closing the one at i.
func (p *parser) matchBrace(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		t := p.toks[i]
		switch {
		case t.Is("{"):
			depth++
		case t.Is("}"):
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(p.toks)
}

// itemEnd finds the exclusive end of the member or statement starting at
// start: a top-level semicolon, or the close of a top-level block unless an
// initializer follows or an assignment came before it.
func (p *parser) itemEnd(start int) int {
	if p.at(start).Is("}") {
		return start + 1
	}

	paren, bracket := 0, 0
	seenAssign := false
	for i := start; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.IsTrivia() {
			continue
		}
		switch t.Text {
		case "(":
			paren++
		case ")":
			if paren > 0 {
				paren--
			}
		case "[":
			bracket++
		case "]":
			if bracket > 0 {
				bracket--
			}
		case "{":
			end := p.matchBrace(i)
			if paren > 0 || bracket > 0 || seenAssign || p.at(p.nextSig(end-1)).Is("=") {
				i = end - 1
				continue
			}
			return end
		case "}":
			return i
		case ";":
			if paren == 0 && bracket == 0 {
				return i + 1
			}
		case "=", "=>":
			if paren == 0 && bracket == 0 {
				seenAssign = true
			}
		}
	}
	return len(p.toks)
}

// atGlobalAttribute reports whether pos starts an assembly or module
// attribute list, which stands alone rather than prefixing a declaration.
func (p *parser) atGlobalAttribute() bool {
	if !p.at(p.pos).Is("[") {
		return false
	}
	target := p.nextSig(p.pos)
	return (p.at(target).Is("assembly") || p.at(target).Is("module")) && p.at(p.nextSig(target)).Is(":")
}

// bracketEnd returns the index just past the bracket closing the one at i.
func (p *parser) bracketEnd(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Is("[") {
			depth++
		} else if t.Is("]") {
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(p.toks)
}

// skipAttributes returns the index of the first significant token after any
// attribute lists starting at i.
func (p *parser) skipAttributes(i int) int {
	for p.at(i).Is("[") {
		i = p.nextSig(p.bracketEnd(i) - 1)
	}
	return i
}

func (p *parser) skipModifiers(i int) int {
	for IsModifier(p.at(i).Text) && !p.at(i).IsTrivia() {
		i = p.nextSig(i)
	}
	return i
}

func (p *parser) typeHeader(start int) (TypeKeyword, string) {
	i := p.skipModifiers(p.skipAttributes(start))
	t := p.at(i)
	next := p.nextSig(i)

	switch t.Text {
	case "class", "struct", "interface", "enum":
		if t.IsTrivia() || p.at(next).Kind != TokenIdentifier {
			return "", ""
		}
		return TypeKeyword(t.Text), p.at(next).Text
	case "record":
		if t.IsTrivia() {
			return "", ""
		}
		if p.at(next).Is("class") || p.at(next).Is("struct") {
			next = p.nextSig(next)
		}
		if p.at(next).Kind != TokenIdentifier {
			return "", ""
		}
		return KeywordRecord, p.at(next).Text
	}
	return "", ""
}

func (p *parser) atTypeDeclaration() bool {
	keyword, _ := p.typeHeader(p.pos)
	return keyword != ""
}

func (p *parser) atUsingDirective() bool {
	i := p.pos
	if p.at(i).Is("global") {
		i = p.nextSig(i)
	}
	if !p.at(i).Is("using") {
		return false
	}
	i = p.nextSig(i)
	if p.at(i).Is("static") {
		i = p.nextSig(i)
	}

	var seq []Token
	for ; i < len(p.toks) && !p.toks[i].Is(";"); i = p.nextSig(i) {
		if p.toks[i].Is("{") || p.toks[i].Is("}") {
			return false
		}
		seq = append(seq, p.toks[i])
	}
	if len(seq) == 0 {
		return true
	}
	if len(seq) > 1 && seq[0].Kind == TokenIdentifier && seq[1].Is("=") {
		return true
	}

	prevIdent := false
	for _, t := range seq {
		switch {
		case t.Kind == TokenIdentifier:
			if prevIdent {
				return false
			}
			prevIdent = true
		case t.Text == "." || t.Text == "::" || t.Text == "<" || t.Text == ">" || t.Text == "," ||
			t.Text == "?" || t.Text == "[" || t.Text == "]" || t.Text == "*":
			prevIdent = false
		default:
			return false
		}
	}
	return true
}
