package ports

import (
	"io"

	"syndication-kit/internal/types"
)

// DocumentStorePort opens and creates serialized documents.
type DocumentStorePort interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
}

// SettingsSourcePort reads a settings file.
type SettingsSourcePort interface {
	LoadSettings(path string) (types.SettingsFile, error)
}
