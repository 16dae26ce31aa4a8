package apml

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"syndication-kit/internal/core"
	"syndication-kit/internal/types"
)

// Compare orders documents field by field in declared order; the first
// difference decides. Attached extensions compare regardless of their order.
func (d *Document) Compare(other *Document) int {
	if c, done := compareNil(d, other); done {
		return c
	}
	return core.CompareChain(
		strings.Compare(d.Version, other.Version),
		d.headOrEmpty().Compare(other.headOrEmpty()),
		d.bodyOrEmpty().Compare(other.bodyOrEmpty()),
		core.CompareExtensionSets(d.Extensions(), other.Extensions()),
	)
}

// Equal reports whether a and b compare equal.
func Equal(a *Document, b *Document) bool {
	return a.Compare(b) == 0
}

// Hash fingerprints the canonical serialization of d. Equal documents hash
// equally.
func (d *Document) Hash(ctx context.Context) (uint64, error) {
	w := &writer{ctx: ctx, canonical: true}
	tree, err := w.document(d, types.SaveSettings{AutoDetectExtensions: true, MinimizeOutputSize: true})
	if err != nil {
		return 0, err
	}
	text, err := tree.WriteToString()
	if err != nil {
		return 0, err
	}
	return core.Fingerprint(text), nil
}

func (h *Head) Compare(other *Head) int {
	return core.CompareChain(
		strings.Compare(h.Title, other.Title),
		strings.Compare(h.Generator, other.Generator),
		strings.Compare(h.UserEmail, other.UserEmail),
		core.CompareTimes(h.DateCreated, other.DateCreated),
		core.CompareExtensionSets(h.Extensions(), other.Extensions()),
	)
}

func (b *Body) Compare(other *Body) int {
	return core.CompareChain(
		strings.Compare(b.DefaultProfile, other.DefaultProfile),
		core.CompareSlices(b.Profiles, other.Profiles, (*Profile).Compare),
		core.CompareSlices(b.Applications, other.Applications, (*Application).Compare),
		core.CompareExtensionSets(b.Extensions(), other.Extensions()),
	)
}

func (p *Profile) Compare(other *Profile) int {
	if c, done := compareNil(p, other); done {
		return c
	}
	return core.CompareChain(
		strings.Compare(p.Name, other.Name),
		p.Implicit.Compare(other.Implicit),
		p.Explicit.Compare(other.Explicit),
		core.CompareExtensionSets(p.Extensions(), other.Extensions()),
	)
}

func (a Attention) Compare(other Attention) int {
	return core.CompareChain(
		core.CompareSlices(a.Concepts, other.Concepts, (*Concept).Compare),
		core.CompareSlices(a.Sources, other.Sources, (*Source).Compare),
	)
}

func (c *Concept) Compare(other *Concept) int {
	if r, done := compareNil(c, other); done {
		return r
	}
	return core.CompareChain(
		strings.Compare(c.Key, other.Key),
		c.Value.Compare(other.Value),
		strings.Compare(c.From, other.From),
		core.CompareTimes(c.Updated, other.Updated),
		core.CompareExtensionSets(c.Extensions(), other.Extensions()),
	)
}

func (s *Source) Compare(other *Source) int {
	if r, done := compareNil(s, other); done {
		return r
	}
	return core.CompareChain(
		strings.Compare(s.Key, other.Key),
		strings.Compare(s.Name, other.Name),
		s.Value.Compare(other.Value),
		strings.Compare(s.Type, other.Type),
		strings.Compare(s.From, other.From),
		core.CompareTimes(s.Updated, other.Updated),
		core.CompareSlices(s.Authors, other.Authors, (*Author).Compare),
		core.CompareExtensionSets(s.Extensions(), other.Extensions()),
	)
}

func (a *Author) Compare(other *Author) int {
	if r, done := compareNil(a, other); done {
		return r
	}
	return core.CompareChain(
		strings.Compare(a.Key, other.Key),
		a.Value.Compare(other.Value),
		strings.Compare(a.From, other.From),
		core.CompareTimes(a.Updated, other.Updated),
		core.CompareExtensionSets(a.Extensions(), other.Extensions()),
	)
}

func (a *Application) Compare(other *Application) int {
	if r, done := compareNil(a, other); done {
		return r
	}
	return core.CompareChain(
		strings.Compare(a.Name, other.Name),
		core.CompareSlices(a.Content, other.Content, compareContent),
		core.CompareExtensionSets(a.Extensions(), other.Extensions()),
	)
}

func compareContent(a *etree.Element, b *etree.Element) int {
	return strings.Compare(contentString(a), contentString(b))
}

func contentString(el *etree.Element) string {
	if el == nil {
		return ""
	}
	doc := etree.NewDocument()
	doc.SetRoot(core.Detach(el))
	text, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return text
}

func (d *Document) headOrEmpty() *Head {
	if d.Head == nil {
		return &Head{}
	}
	return d.Head
}

func (d *Document) bodyOrEmpty() *Body {
	if d.Body == nil {
		return &Body{}
	}
	return d.Body
}

// compareNil orders nil before non-nil. done is false when both are set.
func compareNil[T any](a *T, b *T) (int, bool) {
	switch {
	case a == nil && b == nil:
		return 0, true
	case a == nil:
		return -1, true
	case b == nil:
		return 1, true
	}
	return 0, false
}
