package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/rs/zerolog/log"

	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// Registry maps extension namespaces to the factories that build them.
// Registration order is kept so candidate sets iterate deterministically.
type Registry struct {
	entries map[string]registration
	order   []string
}

type registration struct {
	descriptor types.Descriptor
	factory    ports.ExtensionFactory
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds a dialect. Registering a namespace again keeps whichever
// descriptor carries the higher version.
func (r *Registry) Register(desc types.Descriptor, factory ports.ExtensionFactory) error {
	if desc.IsZero() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("cannot register an empty extension descriptor")
	}
	if factory == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension factory is nil for " + desc.NamespaceURI())
	}
	uri := desc.NamespaceURI()
	if existing, ok := r.entries[uri]; ok {
		if compareVersions(desc.Version(), existing.descriptor.Version()) < 0 {
			log.Debug().
				Str("namespace", uri).
				Str("kept", existing.descriptor.Version()).
				Str("ignored", desc.Version()).
				Msg("older extension registration ignored")
			return nil
		}
		log.Debug().
			Str("namespace", uri).
			Str("version", desc.Version()).
			Msg("extension registration overridden")
		r.entries[uri] = registration{descriptor: desc, factory: factory}
		return nil
	}
	r.entries[uri] = registration{descriptor: desc, factory: factory}
	r.order = append(r.order, uri)
	return nil
}

// MustRegister is Register for static registries.
func (r *Registry) MustRegister(desc types.Descriptor, factory ports.ExtensionFactory) *Registry {
	if err := r.Register(desc, factory); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor registered for uri.
func (r *Registry) Lookup(uri string) (types.Descriptor, bool) {
	entry, ok := r.entries[uri]
	return entry.descriptor, ok
}

// New instantiates the extension registered for uri.
func (r *Registry) New(uri string) (ports.Extension, bool) {
	entry, ok := r.entries[uri]
	if !ok {
		return nil, false
	}
	ext := entry.factory()
	if ext == nil {
		return nil, false
	}
	return ext, true
}

// Descriptors returns every registered dialect in registration order.
func (r *Registry) Descriptors() []types.Descriptor {
	out := make([]types.Descriptor, 0, len(r.order))
	for _, uri := range r.order {
		out = append(out, r.entries[uri].descriptor)
	}
	return out
}

// Candidates narrows the registry to the dialects named by keys, each a
// namespace URI or a prefix. No keys selects everything.
func (r *Registry) Candidates(keys ...string) ([]types.Descriptor, error) {
	if len(keys) == 0 {
		return r.Descriptors(), nil
	}
	var out []types.Descriptor
	seen := make(map[string]struct{})
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		desc, ok := r.resolveKey(key)
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unknown extension: " + key)
		}
		if _, dup := seen[desc.NamespaceURI()]; dup {
			continue
		}
		seen[desc.NamespaceURI()] = struct{}{}
		out = append(out, desc)
	}
	return out, nil
}

func (r *Registry) resolveKey(key string) (types.Descriptor, bool) {
	if entry, ok := r.entries[key]; ok {
		return entry.descriptor, true
	}
	for _, uri := range r.order {
		if r.entries[uri].descriptor.Prefix() == key {
			return r.entries[uri].descriptor, true
		}
	}
	return types.Descriptor{}, false
}

// compareVersions orders descriptor versions as PEP 440 versions and falls
// back to plain string order when either side does not parse.
func compareVersions(a string, b string) int {
	va, errA := pep440.Parse(a)
	vb, errB := pep440.Parse(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return va.Compare(vb)
}
