package ports

import (
	"context"

	"github.com/beevik/etree"

	"syndication-kit/internal/types"
)

// Extension is one dialect instance attached to a host entity. It owns the
// dialect's typed context and knows how to read and write its own markup
// inside its own namespace.
//
// Implementations must be pointer types: hosts detach an instance by
// identity.
type Extension interface {
	// Descriptor identifies the dialect.
	Descriptor() types.Descriptor

	// Load reads the dialect's markup under el (the host element).
	// It returns whether any field was read. An error means the markup
	// could not be interpreted at all.
	Load(ctx context.Context, el *etree.Element, settings types.LoadSettings) (bool, error)

	// WriteTo appends the dialect's markup to parent (the host element).
	// Unset fields are omitted.
	WriteTo(ctx context.Context, parent *etree.Element) error

	// Compare orders two instances of the same dialect. Instances of other
	// dialects are ordered by namespace URI.
	Compare(other Extension) int
}

// ElementClaimer is implemented by extensions that read only some of the
// elements in their namespace. Hosts that keep unrecognized markup ask it
// which children the extension takes over; elements it does not claim stay
// with the host. Extensions without it claim their whole namespace.
type ElementClaimer interface {
	Claims(el *etree.Element) bool
}

// ExtensionFactory returns a default-constructed extension instance.
type ExtensionFactory func() Extension

// Extensible is implemented by every core entity that can carry extensions.
type Extensible interface {
	// Extensions returns the attached instances in insertion order.
	Extensions() []Extension

	// AddExtension appends ext; false only when ext is nil.
	AddExtension(ext Extension) bool

	// RemoveExtension detaches ext; false when it was not attached.
	RemoveExtension(ext Extension) bool

	// FindExtension returns the first attached instance matching match.
	FindExtension(match func(Extension) bool) (Extension, bool)

	HasExtensions() bool

	// ExtensibleChildren lists the directly nested entities, used by the
	// namespace pre-scan before writing.
	ExtensibleChildren() []Extensible
}
