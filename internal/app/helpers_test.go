package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const samplePath = "testdata/sample.apml"

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func requireCode(t *testing.T, err error, want errbuilder.ErrCode) {
	t.Helper()
	require.Error(t, err)
	if diff := cmp.Diff(want, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}
