package core

import (
	"slices"

	"github.com/beevik/etree"

	"syndication-kit/internal/ports"
)

// ExtensionSet is the attached-extension collection embedded by every
// extensible entity. Order of insertion is kept; duplicates are allowed.
// The zero value is ready to use.
type ExtensionSet struct {
	items []ports.Extension
}

// Extensions returns a copy of the attached instances.
func (s *ExtensionSet) Extensions() []ports.Extension {
	return slices.Clone(s.items)
}

func (s *ExtensionSet) AddExtension(ext ports.Extension) bool {
	if ext == nil {
		return false
	}
	if s.items == nil {
		s.items = make([]ports.Extension, 0, 1)
	}
	s.items = append(s.items, ext)
	return true
}

// RemoveExtension detaches the first instance identical to ext. Extensions
// are pointer types, so identity is pointer equality.
func (s *ExtensionSet) RemoveExtension(ext ports.Extension) bool {
	if ext == nil {
		return false
	}
	for i, item := range s.items {
		if item == ext {
			s.items = slices.Delete(s.items, i, i+1)
			return true
		}
	}
	return false
}

func (s *ExtensionSet) FindExtension(match func(ports.Extension) bool) (ports.Extension, bool) {
	if match == nil {
		return nil, false
	}
	for _, item := range s.items {
		if match(item) {
			return item, true
		}
	}
	return nil, false
}

func (s *ExtensionSet) HasExtensions() bool {
	return len(s.items) > 0
}

// ByNamespace matches extensions of the dialect identified by uri.
func ByNamespace(uri string) func(ports.Extension) bool {
	return func(ext ports.Extension) bool {
		return ext.Descriptor().NamespaceURI() == uri
	}
}

// ByKind matches extensions of the same dialect as sample.
func ByKind(sample ports.Extension) func(ports.Extension) bool {
	return func(ext ports.Extension) bool {
		return SameKind(sample, ext)
	}
}

// SameKind reports whether a and b belong to the same dialect.
func SameKind(a ports.Extension, b ports.Extension) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Descriptor().SameDialect(b.Descriptor())
}

// FindAs returns the first extension on host whose concrete type is T.
func FindAs[T ports.Extension](host ports.Extensible) (T, bool) {
	var zero T
	if host == nil {
		return zero, false
	}
	for _, ext := range host.Extensions() {
		if typed, ok := ext.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// Claimed reports whether an extension attached to host takes over el.
// Only extensions in el's namespace are asked; one that does not implement
// ports.ElementClaimer takes every element in its namespace.
func Claimed(host ports.Extensible, el *etree.Element) bool {
	uri := ElementNamespace(el)
	for _, ext := range host.Extensions() {
		if ext.Descriptor().NamespaceURI() != uri {
			continue
		}
		claimer, ok := ext.(ports.ElementClaimer)
		if !ok || claimer.Claims(el) {
			return true
		}
	}
	return false
}
