package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

type SettingsFileAdapter struct{}

func NewSettingsFileAdapter() SettingsFileAdapter {
	return SettingsFileAdapter{}
}

// LoadSettings reads a syndkit.yaml file.
func (a SettingsFileAdapter) LoadSettings(path string) (types.SettingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SettingsFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read settings file: " + path).
			WithCause(err)
	}
	var settings types.SettingsFile
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return types.SettingsFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse settings file: " + path).
			WithCause(err)
	}
	if settings.SchemaVersion == "" {
		return types.SettingsFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings file missing schema_version: " + path)
	}
	log.Debug().
		Str("path", path).
		Int("extensions", len(settings.Extensions)).
		Msg("settings file loaded")
	return settings, nil
}

var _ ports.SettingsSourcePort = SettingsFileAdapter{}
