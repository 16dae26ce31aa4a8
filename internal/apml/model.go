// Package apml models Attention Profiling Markup Language 0.6 documents and
// converts them to and from XML. Every entity of the model can carry
// extensions discovered from foreign-namespace markup.
package apml

import (
	"time"

	"github.com/beevik/etree"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

const (
	NamespaceURI = "http://www.apml.org/apml-0.6"
	Version      = "0.6"
)

// Namespace is the canonical binding of the APML namespace.
var Namespace = types.Namespace{Prefix: "apml", URI: NamespaceURI}

// Document is the root of an attention profile.
type Document struct {
	core.ExtensionSet

	Version string
	Head    *Head
	Body    *Body
}

func NewDocument() *Document {
	return &Document{Version: Version, Head: &Head{}, Body: &Body{}}
}

func (d *Document) ExtensibleChildren() []ports.Extensible {
	var out []ports.Extensible
	if d.Head != nil {
		out = append(out, d.Head)
	}
	if d.Body != nil {
		out = append(out, d.Body)
	}
	return out
}

// Head carries document metadata.
type Head struct {
	core.ExtensionSet

	Title       string
	Generator   string
	UserEmail   string
	DateCreated time.Time
}

func (h *Head) ExtensibleChildren() []ports.Extensible { return nil }

// Body holds the profiles and the application-specific data.
type Body struct {
	core.ExtensionSet

	DefaultProfile string
	Profiles       []*Profile
	Applications   []*Application
}

func (b *Body) ExtensibleChildren() []ports.Extensible {
	out := make([]ports.Extensible, 0, len(b.Profiles)+len(b.Applications))
	for _, p := range b.Profiles {
		if p != nil {
			out = append(out, p)
		}
	}
	for _, a := range b.Applications {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Profile is one named attention profile, split into data gathered from
// behaviour (implicit) and data stated by the user (explicit).
type Profile struct {
	core.ExtensionSet

	Name     string
	Implicit Attention
	Explicit Attention
}

func (p *Profile) ExtensibleChildren() []ports.Extensible {
	out := p.Implicit.extensibles()
	return append(out, p.Explicit.extensibles()...)
}

// Attention groups weighted concepts and sources.
type Attention struct {
	Concepts []*Concept
	Sources  []*Source
}

func (a Attention) IsEmpty() bool {
	return len(a.Concepts) == 0 && len(a.Sources) == 0
}

func (a Attention) extensibles() []ports.Extensible {
	out := make([]ports.Extensible, 0, len(a.Concepts)+len(a.Sources))
	for _, c := range a.Concepts {
		if c != nil {
			out = append(out, c)
		}
	}
	for _, s := range a.Sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Concept is a weighted keyword.
type Concept struct {
	core.ExtensionSet

	Key     string
	Value   types.Score
	From    string
	Updated time.Time
}

func (c *Concept) ExtensibleChildren() []ports.Extensible { return nil }

// Source is a weighted feed or site, optionally with weighted authors.
type Source struct {
	core.ExtensionSet

	Key     string
	Name    string
	Value   types.Score
	Type    string
	From    string
	Updated time.Time
	Authors []*Author
}

func (s *Source) ExtensibleChildren() []ports.Extensible {
	out := make([]ports.Extensible, 0, len(s.Authors))
	for _, a := range s.Authors {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Author is a weighted author of a source.
type Author struct {
	core.ExtensionSet

	Key     string
	Value   types.Score
	From    string
	Updated time.Time
}

func (a *Author) ExtensibleChildren() []ports.Extensible { return nil }

// Application keeps the opaque data an application stored in the profile.
// Content elements are detached copies that carry their own namespace
// declarations.
type Application struct {
	core.ExtensionSet

	Name    string
	Content []*etree.Element
}

func (a *Application) ExtensibleChildren() []ports.Extensible { return nil }

var (
	_ ports.Extensible = (*Document)(nil)
	_ ports.Extensible = (*Head)(nil)
	_ ports.Extensible = (*Body)(nil)
	_ ports.Extensible = (*Profile)(nil)
	_ ports.Extensible = (*Concept)(nil)
	_ ports.Extensible = (*Source)(nil)
	_ ports.Extensible = (*Author)(nil)
	_ ports.Extensible = (*Application)(nil)
)
