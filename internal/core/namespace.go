package core

import (
	"slices"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"

	"syndication-kit/internal/types"
)

// NamespaceManager resolves prefixes for one source tree. It is seeded with
// the format's own namespace, the xml namespace and every declaration found
// on the root element.
type NamespaceManager struct {
	format     types.Namespace
	bindings   map[string]string
	defaultURI string
	hasDefault bool
}

// NewNamespaceManager builds a resolver for a document whose root is root.
func NewNamespaceManager(root *etree.Element, format types.Namespace) (*NamespaceManager, error) {
	if root == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("namespace manager requires a root element")
	}
	if strings.TrimSpace(format.URI) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("namespace manager requires a format namespace")
	}
	m := &NamespaceManager{
		format: format,
		bindings: map[string]string{
			"xml": types.XMLNamespaceURI,
		},
	}
	if format.Prefix != "" {
		m.bindings[format.Prefix] = format.URI
	}
	for _, attr := range root.Attr {
		switch {
		case attr.Space == "" && attr.Key == "xmlns":
			m.defaultURI = attr.Value
			m.hasDefault = true
		case attr.Space == "xmlns":
			m.bindings[attr.Key] = attr.Value
		}
	}
	return m, nil
}

// Format returns the namespace of the document dialect.
func (m *NamespaceManager) Format() types.Namespace {
	return m.format
}

// Resolve returns the URI bound to prefix. The empty prefix resolves to the
// root's default namespace.
func (m *NamespaceManager) Resolve(prefix string) (string, bool) {
	if prefix == "" {
		return m.defaultURI, m.hasDefault
	}
	uri, ok := m.bindings[prefix]
	return uri, ok
}

// PrefixFor returns the prefix the source tree uses for uri. A matching
// default namespace wins over the canonical prefix and yields "".
func (m *NamespaceManager) PrefixFor(uri string) (string, bool) {
	if m.hasDefault && m.defaultURI == uri {
		return "", true
	}
	var prefixes []string
	for prefix, bound := range m.bindings {
		if bound == uri {
			prefixes = append(prefixes, prefix)
		}
	}
	if len(prefixes) == 0 {
		return "", false
	}
	sort.Strings(prefixes)
	return prefixes[0], true
}

// IsFormatElement reports whether el is the format element named local,
// whatever prefix the source used for it.
func (m *NamespaceManager) IsFormatElement(el *etree.Element, local string) bool {
	return IsElement(el, m.format.URI, local)
}

// Child returns the first format child of el named local.
func (m *NamespaceManager) Child(el *etree.Element, local string) *etree.Element {
	for _, child := range el.ChildElements() {
		if m.IsFormatElement(child, local) {
			return child
		}
	}
	return nil
}

// Children returns all format children of el named local.
func (m *NamespaceManager) Children(el *etree.Element, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if m.IsFormatElement(child, local) {
			out = append(out, child)
		}
	}
	return out
}

// IsElement reports whether el lives in uri under the local name local.
func IsElement(el *etree.Element, uri string, local string) bool {
	return el != nil && el.Tag == local && ElementNamespace(el) == uri
}

// ElementNamespace resolves the namespace URI of el from the bindings in
// scope. Unprefixed elements take the nearest default namespace.
func ElementNamespace(el *etree.Element) string {
	switch el.Space {
	case "xml":
		return types.XMLNamespaceURI
	case "xmlns":
		return types.XMLNSNamespaceURI
	}
	return el.NamespaceURI()
}

// AttrNamespace resolves the namespace URI of attr on el. Unprefixed
// attributes are in no namespace; declarations are in the xmlns namespace.
func AttrNamespace(el *etree.Element, attr *etree.Attr) string {
	switch {
	case attr.Space == "" && attr.Key == "xmlns", attr.Space == "xmlns":
		return types.XMLNSNamespaceURI
	case attr.Space == "xml":
		return types.XMLNamespaceURI
	case attr.Space == "":
		return ""
	}
	// Element.Copy leaves copied attributes pointing at the source element.
	if attr.Element() == el {
		return attr.NamespaceURI()
	}
	uri, _ := lookupPrefix(el, attr.Space)
	return uri
}

// AttrValue returns the value of the unqualified attribute key.
func AttrValue(el *etree.Element, key string) (string, bool) {
	for _, attr := range el.Attr {
		if attr.Space == "" && attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// ChildrenNS returns the direct children of el in uri named local.
func ChildrenNS(el *etree.Element, uri string, local string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if IsElement(child, uri, local) {
			out = append(out, child)
		}
	}
	return out
}

// ChildNS returns the first direct child of el in uri named local.
func ChildNS(el *etree.Element, uri string, local string) *etree.Element {
	for _, child := range el.ChildElements() {
		if IsElement(child, uri, local) {
			return child
		}
	}
	return nil
}

// IsFirstChildNS reports whether el is named one of locals in uri and is the
// first such child of its parent, the element ChildNS would return.
func IsFirstChildNS(el *etree.Element, uri string, locals ...string) bool {
	if el == nil || el.Parent() == nil || !slices.Contains(locals, el.Tag) {
		return false
	}
	return ChildNS(el.Parent(), uri, el.Tag) == el
}

// lookupPrefix reports whether prefix is bound in scope at el, and to what.
// Unlike etree's resolution it tells an unbound prefix apart from one bound
// to "", which the write side needs before declaring a namespace.
func lookupPrefix(el *etree.Element, prefix string) (string, bool) {
	switch prefix {
	case "xml":
		return types.XMLNamespaceURI, true
	case "xmlns":
		return types.XMLNSNamespaceURI, true
	}
	for e := el; e != nil; e = e.Parent() {
		for _, attr := range e.Attr {
			if prefix == "" {
				if attr.Space == "" && attr.Key == "xmlns" {
					return attr.Value, true
				}
				continue
			}
			if attr.Space == "xmlns" && attr.Key == prefix {
				return attr.Value, true
			}
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}
