package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"syndication-kit/internal/apml"
	"syndication-kit/internal/types"
)

// documentSettings is the effective configuration of one request after the
// settings file and the request options are merged.
type documentSettings struct {
	load types.LoadSettings
	save types.SaveSettings
}

func (s Service) resolveSettings(opts DocumentOptions) (documentSettings, error) {
	var file types.SettingsFile
	if path := strings.TrimSpace(opts.SettingsPath); path != "" {
		loaded, err := s.Settings.LoadSettings(path)
		if err != nil {
			return documentSettings{}, err
		}
		file = loaded
	}

	keys := opts.Extensions
	if len(keys) == 0 {
		keys = file.Extensions
	}
	candidates, err := s.Registry.Candidates(keys...)
	if err != nil {
		return documentSettings{}, err
	}

	save := types.DefaultSaveSettings()
	if file.Save.AutoDetectExtensions != nil {
		save.AutoDetectExtensions = *file.Save.AutoDetectExtensions
	}
	save.MinimizeOutputSize = file.Save.MinimizeOutputSize
	save.SupportedExtensions = candidates

	return documentSettings{
		load: types.LoadSettings{
			SupportedExtensions:      candidates,
			IsolateExtensionFailures: opts.IsolateExtensionFailures || file.Load.IsolateExtensionFailures,
			Token:                    opts.Token,
		},
		save: save,
	}, nil
}

// loadDocument reads path through the store and returns the populated
// document with its completion event.
func (s Service) loadDocument(ctx context.Context, path string, settings types.LoadSettings) (*apml.Document, types.LoadedEvent, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, types.LoadedEvent{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input document path is required")
	}
	r, err := s.Store.Open(path)
	if err != nil {
		return nil, types.LoadedEvent{}, err
	}
	defer r.Close()

	var event types.LoadedEvent
	settings.Source = path
	settings.OnLoaded = func(ev types.LoadedEvent) {
		event = ev
		log.Ctx(ctx).Debug().
			Str("source", ev.Source).
			Str("token", ev.Token).
			Bool("loaded", ev.Loaded).
			Msg("document loaded")
	}

	doc := &apml.Document{}
	if err := apml.NewLoader(s.Registry).Load(ctx, doc, r, settings); err != nil {
		return nil, event, err
	}
	return doc, event, nil
}
