package reorganizer

import (
	"strings"

	"github.com/MrSimonC/SharpAlignment/pkg/syntax"
)

// triviaLine is one line of leading trivia. The last line of a trivia run is
// usually incomplete: the indentation in front of the node itself.
type triviaLine struct {
	text      string
	blank     bool
	directive bool
	complete  bool
}

func splitTrivia(text string) []triviaLine {
	var lines []triviaLine
	var cur strings.Builder
	line := triviaLine{blank: true}
	for _, t := range syntax.Lex(text) {
		cur.WriteString(t.Text)
		switch t.Kind {
		case syntax.TokenWhitespace:
		case syntax.TokenNewline:
			line.text = cur.String()
			line.complete = true
			lines = append(lines, line)
			cur.Reset()
			line = triviaLine{blank: true}
		case syntax.TokenDirective:
			line.blank = false
			line.directive = true
		default:
			line.blank = false
		}
	}
	if cur.Len() > 0 {
		line.text = cur.String()
		lines = append(lines, line)
	}
	return lines
}

func joinLines(lines []triviaLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.text)
	}
	return sb.String()
}

func (l triviaLine) isBlank() bool {
	return l.complete && l.blank
}

// splitHeader detaches the part of the first item's trivia that belongs to
// the scope rather than the item: everything up to and including the last
// blank or preprocessor line, provided that part holds more than blank lines.
func splitHeader(lines []triviaLine) (header, rest []triviaLine) {
	cut, content := 0, false
	for i, l := range lines {
		if l.complete && (l.blank || l.directive) {
			cut = i + 1
		}
	}
	for _, l := range lines[:cut] {
		if !l.blank {
			content = true
		}
	}
	if !content {
		return nil, lines
	}
	return lines[:cut], lines[cut:]
}

func collapseBlankLines(lines []triviaLine) []triviaLine {
	out := make([]triviaLine, 0, len(lines))
	for _, l := range lines {
		if l.isBlank() && len(out) > 0 && out[len(out)-1].isBlank() {
			continue
		}
		out = append(out, l)
	}
	return out
}

func stripLeadingBlankLines(lines []triviaLine) []triviaLine {
	for len(lines) > 0 && lines[0].isBlank() {
		lines = lines[1:]
	}
	return lines
}

func hasBlankLine(lines []triviaLine) bool {
	for _, l := range lines {
		if l.isBlank() {
			return true
		}
	}
	return false
}

func hasDirective(lines []triviaLine) bool {
	for _, l := range lines {
		if l.directive {
			return true
		}
	}
	return false
}

func lineEnding(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(s, "\n"):
		return "\n"
	case strings.HasSuffix(s, "\r"):
		return "\r"
	}
	return ""
}

// reorderable reports whether the items of list can move without crossing a
// preprocessor directive.
func reorderable(tree *syntax.Tree, list *syntax.List) bool {
	for i, id := range list.Items {
		lines := splitTrivia(tree.Node(id).Leading)
		if i == 0 {
			_, lines = splitHeader(lines)
		}
		if hasDirective(lines) {
			return false
		}
	}
	return true
}

// arrange replaces the items of list with sorted and normalizes the blank
// lines in front of each item: runs of blank lines collapse to one and the
// first item loses its leading blank lines. Blank-line insertion applies to
// moved items only. It returns the number of items whose position changed
// and whether any item's leading trivia was rewritten.
func arrange(tree *syntax.Tree, list *syntax.List, sorted []syntax.NodeID, separateMoved bool) (int, bool) {
	original := list.Items
	moved := 0
	for i, id := range sorted {
		if original[i] != id {
			moved++
		}
	}

	header, first := splitHeader(splitTrivia(tree.Node(original[0]).Leading))
	lines := make(map[syntax.NodeID][]triviaLine, len(original))
	lines[original[0]] = first
	for _, id := range original[1:] {
		lines[id] = splitTrivia(tree.Node(id).Leading)
	}

	if moved > 0 {
		moveFinalLineEnding(tree, original, sorted)
	}

	cleaned := false
	for i, id := range sorted {
		l := collapseBlankLines(lines[id])
		n := tree.Node(id)
		var text string
		if i == 0 {
			text = joinLines(header) + joinLines(stripLeadingBlankLines(l))
		} else {
			text = joinLines(l)
			if separateMoved && original[i] != id && !hasBlankLine(l) {
				text = lineEnding(tree.Node(sorted[i-1]).Trailing) + text
			}
		}
		if moved == 0 && text != n.Leading {
			cleaned = true
		}
		n.Leading = text
	}

	list.Items = sorted
	return moved, cleaned
}

// moveFinalLineEnding keeps a list that ends without a line break (the last
// line of a file, typically) from gluing two items together when its last
// item moves up.
func moveFinalLineEnding(tree *syntax.Tree, original, sorted []syntax.NodeID) {
	oldLast, newLast := original[len(original)-1], sorted[len(sorted)-1]
	if oldLast == newLast || lineEnding(tree.Node(oldLast).Trailing) != "" {
		return
	}
	nl := lineEnding(tree.Node(newLast).Trailing)
	if nl == "" {
		return
	}
	tree.Node(oldLast).Trailing += nl
	tree.Node(newLast).Trailing = strings.TrimSuffix(tree.Node(newLast).Trailing, nl)
}
