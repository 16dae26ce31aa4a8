package adapters

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"syndication-kit/internal/ports"
)

// DocumentFileAdapter reads and writes serialized documents on the local
// filesystem. Relative paths resolve against Dir when it is set.
type DocumentFileAdapter struct {
	Dir string
}

func NewDocumentFileAdapter(dir string) DocumentFileAdapter {
	return DocumentFileAdapter{Dir: dir}
}

func (a DocumentFileAdapter) Open(path string) (io.ReadCloser, error) {
	resolved, err := a.resolve(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(resolved)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open document: " + resolved).
			WithCause(err)
	}
	return file, nil
}

func (a DocumentFileAdapter) Create(path string) (io.WriteCloser, error) {
	resolved, err := a.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	file, err := os.Create(resolved)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document: " + resolved).
			WithCause(err)
	}
	return file, nil
}

func (a DocumentFileAdapter) resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is empty")
	}
	if a.Dir == "" || filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(a.Dir, path), nil
}

var _ ports.DocumentStorePort = DocumentFileAdapter{}
