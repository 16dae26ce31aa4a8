package adapters

import (
	"fmt"
	"strings"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
)

// DefaultRegistry returns a registry holding every dialect shipped with the
// module.
func DefaultRegistry() *core.Registry {
	return core.NewRegistry().
		MustRegister(PublishingControlDescriptor, func() ports.Extension { return NewPublishingControlExtension() }).
		MustRegister(LiveJournalDescriptor, func() ports.Extension { return NewLiveJournalExtension() })
}

// compareForeign orders an extension against one of a different concrete
// type, by namespace first.
func compareForeign(self ports.Extension, other ports.Extension) int {
	if other == nil {
		return 1
	}
	if c := strings.Compare(self.Descriptor().NamespaceURI(), other.Descriptor().NamespaceURI()); c != 0 {
		return c
	}
	// Same namespace served by two implementations.
	return strings.Compare(fmt.Sprintf("%T", self), fmt.Sprintf("%T", other))
}
