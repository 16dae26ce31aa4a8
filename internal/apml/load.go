package apml

import (
	"context"
	"io"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// Loader populates documents from XML, attaching the extensions its
// registry can build.
type Loader struct {
	discoverer core.Discoverer
}

func NewLoader(registry *core.Registry) *Loader {
	return &Loader{discoverer: core.NewDiscoverer(registry, NamespaceURI)}
}

// Load parses r and populates doc in place. Field-level problems are
// skipped; a root that is not APML is a format error. doc is not rolled back
// on failure.
func (l *Loader) Load(ctx context.Context, doc *Document, r io.Reader, settings types.LoadSettings) error {
	if r == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml load requires a reader")
	}
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		return formatError("document is not well-formed xml", err)
	}
	return l.LoadTree(ctx, doc, tree, settings)
}

// LoadTree populates doc from an already parsed tree.
func (l *Loader) LoadTree(ctx context.Context, doc *Document, tree *etree.Document, settings types.LoadSettings) error {
	if tree == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml load requires a document tree")
	}
	root := tree.Root()
	if root == nil {
		return formatError("document has no root element", nil)
	}
	loaded, err := l.LoadElement(ctx, doc, root, settings)
	if err != nil {
		return err
	}
	notify(settings, loaded)
	return nil
}

// LoadElement populates doc from the APML root element and reports whether
// any field was read.
func (l *Loader) LoadElement(ctx context.Context, doc *Document, root *etree.Element, settings types.LoadSettings) (bool, error) {
	if doc == nil || root == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml load requires a document and a root element")
	}
	ns, err := core.NewNamespaceManager(root, Namespace)
	if err != nil {
		return false, err
	}
	if !ns.IsFormatElement(root, "APML") {
		return false, formatError("expected root APML in "+NamespaceURI+", got {"+core.ElementNamespace(root)+"}"+root.Tag, nil)
	}
	rd := l.reader(ctx, ns, settings)

	loaded := rd.attr(root, "version", &doc.Version)
	if el := ns.Child(root, "Head"); el != nil {
		if doc.Head == nil {
			doc.Head = &Head{}
		}
		ok, err := rd.head(doc.Head, el)
		if err != nil {
			return loaded, err
		}
		loaded = loaded || ok
	}
	if el := ns.Child(root, "Body"); el != nil {
		if doc.Body == nil {
			doc.Body = &Body{}
		}
		ok, err := rd.body(doc.Body, el)
		if err != nil {
			return loaded, err
		}
		loaded = loaded || ok
	}
	ok, err := rd.discover(doc, root)
	if err != nil {
		return loaded, err
	}
	loaded = loaded || ok
	log.Ctx(ctx).Debug().
		Bool("loaded", loaded).
		Int("profiles", len(doc.Body.profiles())).
		Msg("apml document loaded")
	return loaded, nil
}

// LoadSource reads a single Source element and its authors.
func (l *Loader) LoadSource(ctx context.Context, el *etree.Element, settings types.LoadSettings) (*Source, bool, error) {
	if el == nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("apml source load requires an element")
	}
	ns, err := core.NewNamespaceManager(el, Namespace)
	if err != nil {
		return nil, false, err
	}
	if !ns.IsFormatElement(el, "Source") {
		return nil, false, formatError("expected Source in "+NamespaceURI+", got {"+core.ElementNamespace(el)+"}"+el.Tag, nil)
	}
	return l.reader(ctx, ns, settings).source(el)
}

func (l *Loader) reader(ctx context.Context, ns *core.NamespaceManager, settings types.LoadSettings) *reader {
	return &reader{
		ctx:        ctx,
		ns:         ns,
		settings:   settings,
		discoverer: l.discoverer,
	}
}

type reader struct {
	ctx        context.Context
	ns         *core.NamespaceManager
	settings   types.LoadSettings
	discoverer core.Discoverer
}

func (r *reader) discover(host ports.Extensible, el *etree.Element) (bool, error) {
	return r.discoverer.Discover(r.ctx, host, el, r.settings)
}

func (r *reader) head(h *Head, el *etree.Element) (bool, error) {
	loaded := r.text(el, "Title", &h.Title)
	loaded = r.text(el, "Generator", &h.Generator) || loaded
	loaded = r.text(el, "UserEmail", &h.UserEmail) || loaded
	loaded = r.textTime(el, "DateCreated", &h.DateCreated) || loaded
	ok, err := r.discover(h, el)
	return loaded || ok, err
}

func (r *reader) body(b *Body, el *etree.Element) (bool, error) {
	loaded := r.attr(el, "defaultprofile", &b.DefaultProfile)
	for _, child := range r.ns.Children(el, "Profile") {
		profile, ok, err := r.profile(child)
		if err != nil {
			return loaded, err
		}
		b.Profiles = append(b.Profiles, profile)
		loaded = loaded || ok
	}
	if apps := r.ns.Child(el, "Applications"); apps != nil {
		for _, child := range r.ns.Children(apps, "Application") {
			app, ok, err := r.application(child)
			if err != nil {
				return loaded, err
			}
			b.Applications = append(b.Applications, app)
			loaded = loaded || ok
		}
	}
	ok, err := r.discover(b, el)
	return loaded || ok, err
}

func (r *reader) profile(el *etree.Element) (*Profile, bool, error) {
	p := &Profile{}
	loaded := r.attr(el, "name", &p.Name)
	if data := r.ns.Child(el, "ImplicitData"); data != nil {
		ok, err := r.attention(&p.Implicit, data)
		if err != nil {
			return p, loaded, err
		}
		loaded = loaded || ok
	}
	if data := r.ns.Child(el, "ExplicitData"); data != nil {
		ok, err := r.attention(&p.Explicit, data)
		if err != nil {
			return p, loaded, err
		}
		loaded = loaded || ok
	}
	ok, err := r.discover(p, el)
	return p, loaded || ok, err
}

func (r *reader) attention(a *Attention, el *etree.Element) (bool, error) {
	loaded := false
	if concepts := r.ns.Child(el, "Concepts"); concepts != nil {
		for _, child := range r.ns.Children(concepts, "Concept") {
			concept, ok, err := r.concept(child)
			if err != nil {
				return loaded, err
			}
			a.Concepts = append(a.Concepts, concept)
			loaded = loaded || ok
		}
	}
	if sources := r.ns.Child(el, "Sources"); sources != nil {
		for _, child := range r.ns.Children(sources, "Source") {
			source, ok, err := r.source(child)
			if err != nil {
				return loaded, err
			}
			a.Sources = append(a.Sources, source)
			loaded = loaded || ok
		}
	}
	return loaded, nil
}

func (r *reader) concept(el *etree.Element) (*Concept, bool, error) {
	c := &Concept{}
	loaded := r.attr(el, "key", &c.Key)
	loaded = r.score(el, "value", &c.Value) || loaded
	loaded = r.attr(el, "from", &c.From) || loaded
	loaded = r.attrTime(el, "updated", &c.Updated) || loaded
	ok, err := r.discover(c, el)
	return c, loaded || ok, err
}

func (r *reader) source(el *etree.Element) (*Source, bool, error) {
	s := &Source{}
	loaded := r.attr(el, "key", &s.Key)
	loaded = r.attr(el, "name", &s.Name) || loaded
	loaded = r.score(el, "value", &s.Value) || loaded
	loaded = r.attr(el, "type", &s.Type) || loaded
	loaded = r.attr(el, "from", &s.From) || loaded
	loaded = r.attrTime(el, "updated", &s.Updated) || loaded
	for _, child := range r.ns.Children(el, "Author") {
		author, ok, err := r.author(child)
		if err != nil {
			return s, loaded, err
		}
		s.Authors = append(s.Authors, author)
		loaded = loaded || ok
	}
	ok, err := r.discover(s, el)
	return s, loaded || ok, err
}

func (r *reader) author(el *etree.Element) (*Author, bool, error) {
	a := &Author{}
	loaded := r.attr(el, "key", &a.Key)
	loaded = r.score(el, "value", &a.Value) || loaded
	loaded = r.attr(el, "from", &a.From) || loaded
	loaded = r.attrTime(el, "updated", &a.Updated) || loaded
	ok, err := r.discover(a, el)
	return a, loaded || ok, err
}

func (r *reader) application(el *etree.Element) (*Application, bool, error) {
	app := &Application{}
	loaded := r.attr(el, "name", &app.Name)
	ok, err := r.discover(app, el)
	if err != nil {
		return app, loaded, err
	}
	for _, child := range el.ChildElements() {
		if core.Claimed(app, child) {
			continue
		}
		app.Content = append(app.Content, core.Detach(child))
		loaded = true
	}
	return app, loaded || ok, nil
}

func (r *reader) attr(el *etree.Element, key string, dst *string) bool {
	value, ok := core.AttrValue(el, key)
	if !ok || value == "" {
		return false
	}
	*dst = value
	return true
}

func (r *reader) score(el *etree.Element, key string, dst *types.Score) bool {
	raw, ok := core.AttrValue(el, key)
	if !ok {
		return false
	}
	score, ok := core.ParseScore(raw)
	if !ok {
		r.skipped(el, key, raw)
		return false
	}
	*dst = score
	return true
}

func (r *reader) attrTime(el *etree.Element, key string, dst *time.Time) bool {
	raw, ok := core.AttrValue(el, key)
	if !ok {
		return false
	}
	parsed, ok := core.ParseTime(raw)
	if !ok {
		r.skipped(el, key, raw)
		return false
	}
	*dst = parsed
	return true
}

func (r *reader) text(parent *etree.Element, local string, dst *string) bool {
	value := core.Text(r.ns.Child(parent, local))
	if value == "" {
		return false
	}
	*dst = value
	return true
}

func (r *reader) textTime(parent *etree.Element, local string, dst *time.Time) bool {
	el := r.ns.Child(parent, local)
	if el == nil {
		return false
	}
	raw := core.Text(el)
	parsed, ok := core.ParseTime(raw)
	if !ok {
		r.skipped(parent, local, raw)
		return false
	}
	*dst = parsed
	return true
}

func (r *reader) skipped(el *etree.Element, field string, raw string) {
	log.Ctx(r.ctx).Debug().
		Str("element", el.Tag).
		Str("field", field).
		Str("value", raw).
		Msg("skipping malformed field")
}

func (b *Body) profiles() []*Profile {
	if b == nil {
		return nil
	}
	return b.Profiles
}

func formatError(msg string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("apml format error: " + msg)
	if cause != nil {
		return builder.WithCause(cause)
	}
	return builder
}

func notify(settings types.LoadSettings, loaded bool) {
	if settings.OnLoaded == nil {
		return
	}
	token := settings.Token
	if token == "" {
		token = uuid.NewString()
	}
	source := settings.Source
	if source == "" {
		source = "stream"
	}
	settings.OnLoaded(types.LoadedEvent{Source: source, Token: token, Loaded: loaded})
}
