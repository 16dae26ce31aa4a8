package apml

import (
	"context"
	"io"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// Save writes d to w. Namespaces of extensions used anywhere in the document
// are declared once on the root when settings.AutoDetectExtensions is set.
func (d *Document) Save(ctx context.Context, w io.Writer, settings types.SaveSettings) error {
	if w == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml save requires a writer")
	}
	tree, err := d.Tree(ctx, settings)
	if err != nil {
		return err
	}
	if _, err := tree.WriteTo(w); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write apml document").
			WithCause(err)
	}
	return nil
}

// Tree builds the XML tree of d without writing it.
func (d *Document) Tree(ctx context.Context, settings types.SaveSettings) (*etree.Document, error) {
	w := &writer{ctx: ctx}
	tree, err := w.document(d, settings)
	if err != nil {
		return nil, err
	}
	if !settings.MinimizeOutputSize {
		w.indent(tree)
	}
	return tree, nil
}

// indent indents the format structure. Application content is put back
// unindented afterwards, since whitespace inside it may be significant.
func (w *writer) indent(tree *etree.Document) {
	kept := make([]*etree.Element, len(w.opaque))
	for i, el := range w.opaque {
		kept[i] = el.Copy()
	}
	tree.Indent(2)
	for i, el := range w.opaque {
		parent, index := el.Parent(), el.Index()
		parent.RemoveChildAt(index)
		parent.InsertChildAt(index, kept[i])
	}
}

// writer emits the fixed element and attribute order of APML 0.6. In
// canonical mode extensions are sorted and scores normalized, so equal
// documents produce identical text.
type writer struct {
	ctx       context.Context
	canonical bool
	// opaque holds the Application content elements placed in the tree.
	opaque []*etree.Element
}

func (w *writer) document(d *Document, settings types.SaveSettings) (*etree.Document, error) {
	if d == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml save requires a document")
	}
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := tree.CreateElement("APML")
	root.CreateAttr("xmlns", NamespaceURI)
	if settings.AutoDetectExtensions {
		descs := core.CollectExtensionTypes(d, settings.SupportedExtensions)
		if w.canonical {
			slices.SortFunc(descs, func(a, b types.Descriptor) int {
				return strings.Compare(a.NamespaceURI(), b.NamespaceURI())
			})
		}
		core.DeclareNamespaces(w.ctx, root, descs)
	}
	setAttr(root, "version", d.Version)
	// Canonical output treats a missing Head or Body like an empty one, as
	// Compare does.
	if d.Head != nil || w.canonical {
		if err := w.head(root, d.headOrEmpty()); err != nil {
			return nil, err
		}
	}
	if d.Body != nil || w.canonical {
		if err := w.body(root, d.bodyOrEmpty()); err != nil {
			return nil, err
		}
	}
	if err := w.extensions(root, d); err != nil {
		return nil, err
	}
	return tree, nil
}

func (w *writer) head(parent *etree.Element, h *Head) error {
	el := formatElement(parent, "Head")
	setText(el, "Title", h.Title)
	setText(el, "Generator", h.Generator)
	setText(el, "UserEmail", h.UserEmail)
	setText(el, "DateCreated", core.FormatTime(h.DateCreated))
	return w.extensions(el, h)
}

func (w *writer) body(parent *etree.Element, b *Body) error {
	el := formatElement(parent, "Body")
	setAttr(el, "defaultprofile", b.DefaultProfile)
	for _, p := range b.Profiles {
		if p == nil {
			continue
		}
		if err := w.profile(el, p); err != nil {
			return err
		}
	}
	if len(b.Applications) > 0 {
		apps := formatElement(el, "Applications")
		for _, app := range b.Applications {
			if app == nil {
				continue
			}
			if err := w.application(apps, app); err != nil {
				return err
			}
		}
	}
	return w.extensions(el, b)
}

func (w *writer) profile(parent *etree.Element, p *Profile) error {
	el := formatElement(parent, "Profile")
	setAttr(el, "name", p.Name)
	if !p.Implicit.IsEmpty() {
		if err := w.attention(formatElement(el, "ImplicitData"), p.Implicit); err != nil {
			return err
		}
	}
	if !p.Explicit.IsEmpty() {
		if err := w.attention(formatElement(el, "ExplicitData"), p.Explicit); err != nil {
			return err
		}
	}
	return w.extensions(el, p)
}

func (w *writer) attention(el *etree.Element, a Attention) error {
	if len(a.Concepts) > 0 {
		concepts := formatElement(el, "Concepts")
		for _, c := range a.Concepts {
			if c == nil {
				continue
			}
			if err := w.concept(concepts, c); err != nil {
				return err
			}
		}
	}
	if len(a.Sources) > 0 {
		sources := formatElement(el, "Sources")
		for _, s := range a.Sources {
			if s == nil {
				continue
			}
			if err := w.source(sources, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) concept(parent *etree.Element, c *Concept) error {
	el := formatElement(parent, "Concept")
	setAttr(el, "key", c.Key)
	setAttr(el, "value", w.score(c.Value))
	setAttr(el, "from", c.From)
	setAttr(el, "updated", core.FormatTime(c.Updated))
	return w.extensions(el, c)
}

func (w *writer) source(parent *etree.Element, s *Source) error {
	el := formatElement(parent, "Source")
	setAttr(el, "key", s.Key)
	setAttr(el, "name", s.Name)
	setAttr(el, "value", w.score(s.Value))
	setAttr(el, "type", s.Type)
	setAttr(el, "from", s.From)
	setAttr(el, "updated", core.FormatTime(s.Updated))
	for _, a := range s.Authors {
		if a == nil {
			continue
		}
		if err := w.author(el, a); err != nil {
			return err
		}
	}
	return w.extensions(el, s)
}

func (w *writer) author(parent *etree.Element, a *Author) error {
	el := formatElement(parent, "Author")
	setAttr(el, "key", a.Key)
	setAttr(el, "value", w.score(a.Value))
	setAttr(el, "from", a.From)
	setAttr(el, "updated", core.FormatTime(a.Updated))
	return w.extensions(el, a)
}

func (w *writer) application(parent *etree.Element, app *Application) error {
	el := formatElement(parent, "Application")
	setAttr(el, "name", app.Name)
	for _, content := range app.Content {
		if content == nil {
			continue
		}
		placed := core.Detach(content)
		el.AddChild(placed)
		w.opaque = append(w.opaque, placed)
	}
	return w.extensions(el, app)
}

func (w *writer) extensions(el *etree.Element, host ports.Extensible) error {
	exts := host.Extensions()
	if w.canonical {
		exts = core.SortExtensions(exts)
	}
	for _, ext := range exts {
		if err := ext.WriteTo(w.ctx, el); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write extension " + ext.Descriptor().Prefix() + " on " + el.Tag).
				WithCause(err)
		}
	}
	return nil
}

func (w *writer) score(s types.Score) string {
	if w.canonical {
		return s.Canonical()
	}
	return s.Format()
}

// WriteTo appends the Source element to parent, as the document writer
// would.
func (s *Source) WriteTo(ctx context.Context, parent *etree.Element) error {
	w := &writer{ctx: ctx}
	return w.source(parent, s)
}

// formatElement creates an APML element under parent, declaring the APML
// default namespace when parent does not already provide it.
func formatElement(parent *etree.Element, local string) *etree.Element {
	el := parent.CreateElement(local)
	if core.ElementNamespace(el) != NamespaceURI {
		el.CreateAttr("xmlns", NamespaceURI)
	}
	return el
}

// setAttr skips unset values.
func setAttr(el *etree.Element, key string, value string) {
	if value == "" {
		return
	}
	el.CreateAttr(key, value)
}

func setText(parent *etree.Element, local string, value string) {
	if value == "" {
		return
	}
	formatElement(parent, local).SetText(value)
}
