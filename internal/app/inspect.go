package app

import (
	"context"
	"sort"

	"syndication-kit/internal/apml"
	"syndication-kit/internal/ports"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	settings, err := s.resolveSettings(req.DocumentOptions)
	if err != nil {
		return InspectResult{}, err
	}
	doc, event, err := s.loadDocument(ctx, req.InputPath, settings.load)
	if err != nil {
		return InspectResult{}, err
	}
	hash, err := doc.Hash(ctx)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Version:    doc.Version,
		Loaded:     event.Loaded,
		Token:      event.Token,
		Extensions: summarizeExtensions(doc),
		Hash:       hash,
	}
	if doc.Head != nil {
		result.Title = doc.Head.Title
		result.Generator = doc.Head.Generator
	}
	if doc.Body != nil {
		result.DefaultProfile = doc.Body.DefaultProfile
		result.Profiles = summarizeProfiles(doc.Body)
		for _, app := range doc.Body.Applications {
			if app != nil {
				result.Applications = append(result.Applications, app.Name)
			}
		}
	}
	return result, nil
}

func summarizeProfiles(body *apml.Body) []ProfileSummary {
	var summaries []ProfileSummary
	for _, p := range body.Profiles {
		if p == nil {
			continue
		}
		summaries = append(summaries, ProfileSummary{
			Name:             p.Name,
			Default:          p.Name != "" && p.Name == body.DefaultProfile,
			ImplicitConcepts: len(p.Implicit.Concepts),
			ImplicitSources:  len(p.Implicit.Sources),
			ExplicitConcepts: len(p.Explicit.Concepts),
			ExplicitSources:  len(p.Explicit.Sources),
		})
	}
	return summaries
}

// summarizeExtensions counts, per dialect, the entities carrying it. The
// result is ordered by prefix.
func summarizeExtensions(doc *apml.Document) []ExtensionUsage {
	usage := map[string]ExtensionUsage{}
	var walk func(entity ports.Extensible)
	walk = func(entity ports.Extensible) {
		seen := map[string]struct{}{}
		for _, ext := range entity.Extensions() {
			desc := ext.Descriptor()
			if _, dup := seen[desc.NamespaceURI()]; dup {
				continue
			}
			seen[desc.NamespaceURI()] = struct{}{}
			entry := usage[desc.NamespaceURI()]
			entry.Prefix = desc.Prefix()
			entry.Namespace = desc.NamespaceURI()
			entry.Count++
			usage[desc.NamespaceURI()] = entry
		}
		for _, child := range entity.ExtensibleChildren() {
			walk(child)
		}
	}
	walk(doc)

	out := make([]ExtensionUsage, 0, len(usage))
	for _, entry := range usage {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prefix != out[j].Prefix {
			return out[i].Prefix < out[j].Prefix
		}
		return out[i].Namespace < out[j].Namespace
	})
	return out
}
