package app

import (
	"syndication-kit/internal/adapters"
	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
)

type Service struct {
	Store    ports.DocumentStorePort
	Settings ports.SettingsSourcePort
	Registry *core.Registry
}

func NewService() Service {
	return Service{
		Store:    adapters.NewDocumentFileAdapter(""),
		Settings: adapters.NewSettingsFileAdapter(),
		Registry: adapters.DefaultRegistry(),
	}
}
