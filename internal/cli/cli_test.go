package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndication-kit/internal/app"
)

// ---------- Command tree tests ----------

const samplePath = "../app/testdata/sample.apml"

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"inspect", "normalize", "roundtrip", "extensions"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestDocumentCommandFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{newInspectCommand(), newNormalizeCommand(), newRoundTripCommand()} {
		for _, name := range []string{"settings", "extension", "isolate-extension-failures", "token"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%s is missing flag: %s", cmd.Name(), name)
		}
	}
}

func TestNormalizeCommandFlags(t *testing.T) {
	cmd := newNormalizeCommand()
	for _, name := range []string{"output", "minimize", "local-namespaces"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDocumentCommandsRequireInput(t *testing.T) {
	for _, name := range []string{"inspect", "normalize", "roundtrip"} {
		t.Run(name, func(t *testing.T) {
			root := newRootCommand()
			root.SetArgs([]string{name})
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			assert.Error(t, root.ExecuteContext(t.Context()))
		})
	}
}

func TestRunCommands(t *testing.T) {
	require.NoError(t, runInspect(t.Context(), nil, samplePath, inspectOptions{}))
	require.NoError(t, runRoundTrip(t.Context(), nil, samplePath, roundTripOptions{}))
	require.NoError(t, runExtensions())

	output := filepath.Join(t.TempDir(), "out.apml")
	require.NoError(t, runNormalize(t.Context(), nil, samplePath, normalizeOptions{Output: output}))
	_, err := os.Stat(output)
	require.NoError(t, err)
}

func TestRunInspectMissingDocument(t *testing.T) {
	err := runInspect(t.Context(), nil, "testdata/absent.apml", inspectOptions{})
	require.Error(t, err)
	assert.Equal(t, 5, exitCodeForError(err))
}

func TestResolveDocumentOptions(t *testing.T) {
	got := resolveDocumentOptions(nil, documentFlags{
		Settings:   "syndkit.yaml",
		Extensions: []string{"lj"},
		Isolate:    true,
		Token:      "t-1",
	})
	want := app.DocumentOptions{
		SettingsPath:             "syndkit.yaml",
		Extensions:               []string{"lj"},
		IsolateExtensionFailures: true,
		Token:                    "t-1",
	}
	assert.Equal(t, want, got)
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		values   []string
		expected []string
	}{
		{
			name:     "nil cmd with values returns values",
			cmd:      nil,
			values:   []string{"a", "b"},
			expected: []string{"a", "b"},
		},
		{
			name:     "nil cmd empty returns nil",
			cmd:      nil,
			values:   nil,
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStrings(tt.cmd, tt.values, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBool(t *testing.T) {
	got := resolveBool(nil, true, "test_key", "test-flag")
	assert.True(t, got)

	got = resolveBool(nil, false, "test_key", "test-flag")
	assert.False(t, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("input document path is required"),
			expected: 2,
		},
		{
			name: "format error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("apml format error: document is not well-formed xml"),
			expected: 3,
		},
		{
			name: "failed precondition",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("document changed across save and load"),
			expected: 4,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("unknown extension: dc"),
			expected: 5,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
