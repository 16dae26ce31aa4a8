package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Normalize rewrites a document in the fixed element and attribute order,
// with extension namespaces hoisted to the root unless disabled.
func (s Service) Normalize(ctx context.Context, req NormalizeRequest) (NormalizeResult, error) {
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return NormalizeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output document path is required")
	}
	settings, err := s.resolveSettings(req.DocumentOptions)
	if err != nil {
		return NormalizeResult{}, err
	}
	if req.Minimize {
		settings.save.MinimizeOutputSize = true
	}
	if req.LocalNamespaces {
		settings.save.AutoDetectExtensions = false
	}

	doc, _, err := s.loadDocument(ctx, req.InputPath, settings.load)
	if err != nil {
		return NormalizeResult{}, err
	}
	w, err := s.Store.Create(outputPath)
	if err != nil {
		return NormalizeResult{}, err
	}
	if err := doc.Save(ctx, w, settings.save); err != nil {
		_ = w.Close()
		return NormalizeResult{}, err
	}
	if err := w.Close(); err != nil {
		return NormalizeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close output document").
			WithCause(err)
	}
	hash, err := doc.Hash(ctx)
	if err != nil {
		return NormalizeResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("input", req.InputPath).
		Str("output", outputPath).
		Msg("document normalized")
	return NormalizeResult{OutputPath: outputPath, Hash: hash}, nil
}
