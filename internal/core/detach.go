package core

import (
	"strings"

	"github.com/beevik/etree"
)

// Detach returns a deep copy of el that can be moved under any parent
// without changing meaning: every prefix the copy uses, and its default
// namespace, is declared on the copy's root. Indentation is dropped from the
// copy; other whitespace is content and stays.
func Detach(el *etree.Element) *etree.Element {
	cp := el.Copy()
	StripWhitespace(cp)

	needed := make(map[string]struct{})
	collectPrefixes(cp, needed)
	for prefix := range needed {
		if _, found := lookupDeclared(cp, prefix); found {
			continue
		}
		uri, ok := lookupPrefix(el, prefix)
		if !ok {
			continue
		}
		if prefix == "" {
			cp.CreateAttr("xmlns", uri)
			continue
		}
		cp.CreateAttr("xmlns:"+prefix, uri)
	}
	return cp
}

// StripWhitespace removes indentation below el: whitespace-only character
// data that contains a line break. A lone space between inline elements is
// kept.
func StripWhitespace(el *etree.Element) {
	for i := len(el.Child) - 1; i >= 0; i-- {
		switch tok := el.Child[i].(type) {
		case *etree.CharData:
			if tok.IsWhitespace() && strings.ContainsAny(tok.Data, "\r\n") {
				el.RemoveChildAt(i)
			}
		case *etree.Element:
			StripWhitespace(tok)
		}
	}
}

// collectPrefixes records the prefixes used by elements and attributes in
// the subtree rooted at el, whose bindings are not declared on the node that
// uses them or below it.
func collectPrefixes(el *etree.Element, into map[string]struct{}) {
	if _, found := lookupDeclared(el, el.Space); !found {
		into[el.Space] = struct{}{}
	}
	for _, attr := range el.Attr {
		if attr.Space == "" || attr.Space == "xmlns" || attr.Space == "xml" {
			continue
		}
		if _, found := lookupDeclared(el, attr.Space); !found {
			into[attr.Space] = struct{}{}
		}
	}
	for _, child := range el.ChildElements() {
		collectPrefixes(child, into)
	}
}

// lookupDeclared is lookupPrefix without the implicit bindings: it reports
// found only when an ancestor-or-self carries the declaration.
func lookupDeclared(el *etree.Element, prefix string) (string, bool) {
	if prefix == "xml" || prefix == "xmlns" {
		return "", true
	}
	for e := el; e != nil; e = e.Parent() {
		for _, attr := range e.Attr {
			if prefix == "" && attr.Space == "" && attr.Key == "xmlns" {
				return attr.Value, true
			}
			if prefix != "" && attr.Space == "xmlns" && attr.Key == prefix {
				return attr.Value, true
			}
		}
	}
	return "", false
}
