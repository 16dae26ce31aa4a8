package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// PublishingControlDescriptor identifies the Atom Publishing Protocol
// control dialect (RFC 5023, section 13).
var PublishingControlDescriptor = types.MustDescriptor(types.DescriptorInfo{
	Prefix:           "app",
	NamespaceURI:     "http://www.w3.org/2007/app",
	Version:          "1.0",
	DocumentationURI: "https://www.rfc-editor.org/rfc/rfc5023",
	DisplayName:      "Atom Publishing Control",
	Description:      "Draft status and last-edited timestamp of a published entry.",
})

// PublishingControl holds the fields of the dialect. A nil Draft and a zero
// Edited are unset.
type PublishingControl struct {
	Draft  *bool
	Edited time.Time
}

type PublishingControlExtension struct {
	context PublishingControl
}

func NewPublishingControlExtension() *PublishingControlExtension {
	return &PublishingControlExtension{}
}

// Context exposes the dialect fields for reading and assignment.
func (e *PublishingControlExtension) Context() *PublishingControl {
	return &e.context
}

func (e *PublishingControlExtension) Descriptor() types.Descriptor {
	return PublishingControlDescriptor
}

func (e *PublishingControlExtension) Load(_ context.Context, el *etree.Element, _ types.LoadSettings) (bool, error) {
	uri := PublishingControlDescriptor.NamespaceURI()
	loaded := false
	if control := core.ChildNS(el, uri, "control"); control != nil {
		if draft := core.ChildNS(control, uri, "draft"); draft != nil {
			switch value := strings.ToLower(core.Text(draft)); value {
			case "yes":
				e.context.Draft = boolPtr(true)
			case "no":
				e.context.Draft = boolPtr(false)
			default:
				return loaded, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("app:draft must be yes or no, got '" + value + "'")
			}
			loaded = true
		}
	}
	if edited := core.ChildNS(el, uri, "edited"); edited != nil {
		value := core.Text(edited)
		parsed, ok := core.ParseTime(value)
		if !ok {
			return loaded, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("app:edited is not an RFC 3339 date: '" + value + "'")
		}
		e.context.Edited = parsed
		loaded = true
	}
	return loaded, nil
}

// Claims reports whether el is one of the elements Load reads.
func (e *PublishingControlExtension) Claims(el *etree.Element) bool {
	return core.IsFirstChildNS(el, PublishingControlDescriptor.NamespaceURI(), "control", "edited")
}

func (e *PublishingControlExtension) WriteTo(ctx context.Context, parent *etree.Element) error {
	if e.context.Draft != nil {
		control := core.CreateExtensionElement(ctx, parent, PublishingControlDescriptor, "control")
		draft := core.CreateExtensionElement(ctx, control, PublishingControlDescriptor, "draft")
		if *e.context.Draft {
			draft.SetText("yes")
		} else {
			draft.SetText("no")
		}
	}
	if !e.context.Edited.IsZero() {
		edited := core.CreateExtensionElement(ctx, parent, PublishingControlDescriptor, "edited")
		edited.SetText(core.FormatTime(e.context.Edited))
	}
	return nil
}

func (e *PublishingControlExtension) Compare(other ports.Extension) int {
	o, ok := other.(*PublishingControlExtension)
	if !ok {
		return compareForeign(e, other)
	}
	return core.CompareChain(
		core.CompareBoolPtr(e.context.Draft, o.context.Draft),
		core.CompareTimes(e.context.Edited, o.context.Edited),
	)
}

func boolPtr(v bool) *bool {
	return &v
}

var (
	_ ports.Extension      = (*PublishingControlExtension)(nil)
	_ ports.ElementClaimer = (*PublishingControlExtension)(nil)
)
