package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"

	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// Discoverer attaches extensions to entities based on the namespaces used in
// their markup.
type Discoverer struct {
	registry      *Registry
	hostNamespace string
}

// NewDiscoverer returns a discoverer for documents of hostNamespace. Elements
// of the host namespace are separate entities and are not searched when
// testing a parent for extension markup.
func NewDiscoverer(registry *Registry, hostNamespace string) Discoverer {
	return Discoverer{registry: registry, hostNamespace: hostNamespace}
}

// Discover tests el for every candidate in settings.SupportedExtensions and
// attaches an instance to host for each dialect whose namespace is present.
// Presence alone decides attachment; what Load reports only feeds the
// returned flag. The flag is true when any attached extension read a field.
func (d Discoverer) Discover(ctx context.Context, host ports.Extensible, el *etree.Element, settings types.LoadSettings) (bool, error) {
	if host == nil || el == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension discovery requires a host and an element")
	}
	if d.registry == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension discovery requires a registry")
	}
	logger := log.Ctx(ctx)
	loaded := false
	for _, candidate := range settings.SupportedExtensions {
		uri := candidate.NamespaceURI()
		if !HasNamespace(el, uri, d.hostNamespace) {
			continue
		}
		ext, ok := d.registry.New(uri)
		if !ok {
			logger.Warn().
				Str("namespace", uri).
				Str("element", el.Tag).
				Msg("extension markup found but dialect is not registered")
			continue
		}
		ok, err := ext.Load(ctx, el, settings)
		if err != nil {
			if !settings.IsolateExtensionFailures {
				return loaded, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("failed to load extension " + candidate.Prefix() + " on " + el.Tag).
					WithCause(err)
			}
			logger.Warn().
				Err(err).
				Str("namespace", uri).
				Str("element", el.Tag).
				Msg("extension failed to load, keeping partial instance")
		}
		host.AddExtension(ext)
		loaded = loaded || ok
		logger.Debug().
			Str("namespace", uri).
			Str("element", el.Tag).
			Bool("loaded", ok).
			Msg("extension attached")
	}
	return loaded, nil
}

// HasNamespace reports whether any attribute of el, or any descendant
// element or its attributes, is qualified by uri. Descent stops at elements
// of hostNamespace.
func HasNamespace(el *etree.Element, uri string, hostNamespace string) bool {
	if uri == "" {
		return false
	}
	for i := range el.Attr {
		if AttrNamespace(el, &el.Attr[i]) == uri {
			return true
		}
	}
	for _, child := range el.ChildElements() {
		ns := ElementNamespace(child)
		if ns == uri {
			return true
		}
		if hostNamespace != "" && ns == hostNamespace {
			continue
		}
		if HasNamespace(child, uri, hostNamespace) {
			return true
		}
	}
	return false
}
