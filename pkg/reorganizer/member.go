package reorganizer

import (
	"fmt"
	"strings"

	"github.com/MrSimonC/SharpAlignment/pkg/syntax"
)

// MemberKind is the primary sort key of a type member.
type MemberKind int

const (
	KindConstant MemberKind = iota
	KindField
	KindConstructor
	KindDestructor
	KindProperty
	KindIndexer
	KindDelegate
	KindEvent
	KindMethod
	KindOperator
	KindConversionOperator
	KindNestedType
	KindUnknown
)

var memberKindNames = []string{
	KindConstant:           "constant",
	KindField:              "field",
	KindConstructor:        "constructor",
	KindDestructor:         "destructor",
	KindProperty:           "property",
	KindIndexer:            "indexer",
	KindDelegate:           "delegate",
	KindEvent:              "event",
	KindMethod:             "method",
	KindOperator:           "operator",
	KindConversionOperator: "conversion-operator",
	KindNestedType:         "nested-type",
	KindUnknown:            "unknown",
}

func (k MemberKind) String() string {
	if k >= 0 && int(k) < len(memberKindNames) {
		return memberKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseMemberKind maps a configuration name such as "nested-type" to its kind.
func ParseMemberKind(name string) (MemberKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for k, n := range memberKindNames {
		if n == normalized {
			return MemberKind(k), nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown member kind %q", name)
}

// DefaultMemberOrder is the kind ranking used when none is configured.
func DefaultMemberOrder() []MemberKind {
	order := make([]MemberKind, 0, len(memberKindNames))
	for k := range memberKindNames {
		order = append(order, MemberKind(k))
	}
	return order
}

// AccessRank orders access levels, most visible first.
type AccessRank int

const (
	AccessPublic AccessRank = iota
	AccessInternal
	AccessProtectedInternal
	AccessProtected
	AccessPrivateProtected
	AccessPrivate
)

// ModifierRank orders the additional modifiers of a member.
type ModifierRank int

const (
	ModifierConst ModifierRank = iota
	ModifierStaticReadonly
	ModifierStatic
	ModifierReadonly
	ModifierAbstract
	ModifierVirtual
	ModifierOverride
	ModifierNone
)

// MemberInfo holds the comparable attributes of one type member.
type MemberInfo struct {
	Kind         MemberKind
	AccessRank   AccessRank
	ModifierRank ModifierRank
	Identifier   string // "" for operators and anything unnamed

	Node    syntax.NodeID
	Leading string
}

// DefaultAccess returns the access level of members declared without an
// access modifier inside a type introduced by keyword.
func DefaultAccess(keyword syntax.TypeKeyword) AccessRank {
	if keyword == syntax.KeywordInterface {
		return AccessPublic
	}
	return AccessPrivate
}

// ClassifyMember extracts the attributes of a member node. Members that
// cannot be recognised get KindUnknown rather than an error.
func ClassifyMember(tree *syntax.Tree, id syntax.NodeID, defaultAccess AccessRank) MemberInfo {
	n := tree.Node(id)
	info := MemberInfo{Node: id, Leading: n.Leading}

	head := n.Head
	i := skipAttributeLists(head, 0)
	mods := map[string]bool{}
	for ; i < len(head) && head[i].Kind == syntax.TokenIdentifier && syntax.IsModifier(head[i].Text); i++ {
		mods[head[i].Text] = true
	}
	info.AccessRank = accessRank(mods, defaultAccess)
	info.ModifierRank = modifierRank(mods)

	if n.Kind == syntax.NodeTypeDeclaration {
		info.Kind = KindNestedType
		info.Identifier = n.Name
		return info
	}
	info.Kind, info.Identifier = memberShape(head[i:], mods)
	return info
}

func skipAttributeLists(toks []syntax.Token, i int) int {
	for i < len(toks) && toks[i].Text == "[" {
		depth := 0
		for ; i < len(toks); i++ {
			if toks[i].Text == "[" {
				depth++
			} else if toks[i].Text == "]" {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
		}
	}
	return i
}

func accessRank(mods map[string]bool, fallback AccessRank) AccessRank {
	switch {
	case mods["public"]:
		return AccessPublic
	case mods["protected"] && mods["internal"]:
		return AccessProtectedInternal
	case mods["private"] && mods["protected"]:
		return AccessPrivateProtected
	case mods["internal"]:
		return AccessInternal
	case mods["protected"]:
		return AccessProtected
	case mods["private"]:
		return AccessPrivate
	default:
		return fallback
	}
}

func modifierRank(mods map[string]bool) ModifierRank {
	switch {
	case mods["const"]:
		return ModifierConst
	case mods["static"] && mods["readonly"]:
		return ModifierStaticReadonly
	case mods["static"]:
		return ModifierStatic
	case mods["readonly"]:
		return ModifierReadonly
	case mods["abstract"]:
		return ModifierAbstract
	case mods["virtual"]:
		return ModifierVirtual
	case mods["override"]:
		return ModifierOverride
	default:
		return ModifierNone
	}
}

// memberShape decides the kind and name of a member from the tokens that
// follow its attributes and modifiers.
func memberShape(toks []syntax.Token, mods map[string]bool) (MemberKind, string) {
	if len(toks) == 0 {
		return KindUnknown, ""
	}

	switch {
	case toks[0].Text == "~":
		if len(toks) > 1 && toks[1].Kind == syntax.TokenIdentifier {
			return KindDestructor, toks[1].Text
		}
		return KindDestructor, ""
	case toks[0].Kind == syntax.TokenIdentifier && len(toks) > 1 && toks[1].Text == "(" && toks[0].Text != "delegate":
		return KindConstructor, toks[0].Text
	}

	isEvent := toks[0].Text == "event"
	isDelegate := toks[0].Text == "delegate"
	fieldKind := KindField
	if mods["const"] {
		fieldKind = KindConstant
	}

	paren, bracket, angle := 0, 0, 0
	lastIdent := ""
	var prev syntax.Token
	for j, t := range toks {
		topLevel := paren == 0 && bracket == 0 && angle == 0

		switch {
		case t.Text == "operator" && paren == 0 && bracket == 0:
			if prev.Text == "implicit" || prev.Text == "explicit" {
				return KindConversionOperator, ""
			}
			return KindOperator, ""
		case t.Text == "this" && topLevel && j+1 < len(toks) && toks[j+1].Text == "[":
			return KindIndexer, "this"
		case t.Text == "<" && bracket == 0 && paren == 0 && prev.Kind == syntax.TokenIdentifier:
			angle++
		case t.Text == ">" && angle > 0:
			angle--
		case t.Text == "(" && topLevel && (prev.Kind == syntax.TokenIdentifier || prev.Text == ">"):
			if isDelegate {
				return KindDelegate, lastIdent
			}
			return KindMethod, lastIdent
		case (t.Text == "{" || t.Text == "=>") && topLevel:
			if isEvent {
				return KindEvent, lastIdent
			}
			return KindProperty, lastIdent
		case (t.Text == "=" || t.Text == ";" || t.Text == ",") && topLevel:
			if isEvent {
				return KindEvent, lastIdent
			}
			if isDelegate {
				return KindDelegate, lastIdent
			}
			return fieldKind, lastIdent
		case t.Text == "(":
			paren++
		case t.Text == ")" && paren > 0:
			paren--
		case t.Text == "[":
			bracket++
		case t.Text == "]" && bracket > 0:
			bracket--
		case t.Kind == syntax.TokenIdentifier && topLevel:
			lastIdent = t.Text
		}
		prev = t
	}

	if mods["const"] {
		return KindConstant, lastIdent
	}
	return KindUnknown, lastIdent
}
