package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/beevik/etree"

	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// CollectExtensionTypes walks the whole entity graph under root and returns
// each extension dialect in use, once, in first-seen order. A non-empty
// candidates list restricts the result to those dialects.
func CollectExtensionTypes(root ports.Extensible, candidates []types.Descriptor) []types.Descriptor {
	var allowed map[string]struct{}
	if len(candidates) > 0 {
		allowed = make(map[string]struct{}, len(candidates))
		for _, desc := range candidates {
			allowed[desc.NamespaceURI()] = struct{}{}
		}
	}
	seen := make(map[string]struct{})
	var out []types.Descriptor
	var walk func(entity ports.Extensible)
	walk = func(entity ports.Extensible) {
		if entity == nil {
			return
		}
		for _, ext := range entity.Extensions() {
			desc := ext.Descriptor()
			uri := desc.NamespaceURI()
			if _, dup := seen[uri]; dup {
				continue
			}
			if allowed != nil {
				if _, ok := allowed[uri]; !ok {
					continue
				}
			}
			seen[uri] = struct{}{}
			out = append(out, desc)
		}
		for _, child := range entity.ExtensibleChildren() {
			walk(child)
		}
	}
	walk(root)
	return out
}

// DeclareNamespaces adds an xmlns declaration on root for every dialect
// whose prefix is not already bound. A prefix bound to another namespace is
// left alone; extensions of that dialect then declare locally.
func DeclareNamespaces(ctx context.Context, root *etree.Element, descs []types.Descriptor) {
	for _, desc := range descs {
		assert.NotEmpty(ctx, desc.Prefix(), "extension descriptor must carry a prefix")
		if _, bound := lookupPrefix(root, desc.Prefix()); bound {
			continue
		}
		root.CreateAttr("xmlns:"+desc.Prefix(), desc.NamespaceURI())
	}
}

// CreateExtensionElement appends prefix:local to parent for the dialect desc,
// declaring the namespace on the new element when it is not in scope.
func CreateExtensionElement(ctx context.Context, parent *etree.Element, desc types.Descriptor, local string) *etree.Element {
	assert.NotEmpty(ctx, desc.NamespaceURI(), "extension descriptor must carry a namespace")
	el := parent.CreateElement(desc.Prefix() + ":" + local)
	if uri, ok := lookupPrefix(parent, desc.Prefix()); !ok || uri != desc.NamespaceURI() {
		el.CreateAttr("xmlns:"+desc.Prefix(), desc.NamespaceURI())
	}
	return el
}
