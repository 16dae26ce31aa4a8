package app

import (
	"bytes"
	"context"

	"github.com/rs/zerolog/log"

	"syndication-kit/internal/apml"
)

// RoundTrip loads a document, saves it and loads the output again. Equal is
// false when the second load no longer compares equal to the first.
func (s Service) RoundTrip(ctx context.Context, req RoundTripRequest) (RoundTripResult, error) {
	settings, err := s.resolveSettings(req.DocumentOptions)
	if err != nil {
		return RoundTripResult{}, err
	}
	original, _, err := s.loadDocument(ctx, req.InputPath, settings.load)
	if err != nil {
		return RoundTripResult{}, err
	}

	var buf bytes.Buffer
	if err := original.Save(ctx, &buf, settings.save); err != nil {
		return RoundTripResult{}, err
	}
	output := buf.String()

	reloaded := &apml.Document{}
	reloadSettings := settings.load
	reloadSettings.Source = req.InputPath + " (saved)"
	if err := apml.NewLoader(s.Registry).Load(ctx, reloaded, &buf, reloadSettings); err != nil {
		return RoundTripResult{}, err
	}

	originalHash, err := original.Hash(ctx)
	if err != nil {
		return RoundTripResult{}, err
	}
	reloadedHash, err := reloaded.Hash(ctx)
	if err != nil {
		return RoundTripResult{}, err
	}
	equal := apml.Equal(original, reloaded)
	if !equal {
		log.Ctx(ctx).Warn().
			Str("input", req.InputPath).
			Msg("document changed across save and load")
	}
	return RoundTripResult{
		Equal:        equal,
		OriginalHash: originalHash,
		ReloadedHash: reloadedHash,
		Output:       output,
	}, nil
}
