package app

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectApp(t *testing.T) {
	service := NewService()
	result, err := service.Inspect(t.Context(), InspectRequest{
		DocumentOptions: DocumentOptions{Token: "run-1"},
		InputPath:       samplePath,
	})
	require.NoError(t, err)

	if diff := cmp.Diff("0.6", result.Version); diff != "" {
		t.Fatalf("unexpected version (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Example APML file for apml.org", result.Title); diff != "" {
		t.Fatalf("unexpected title (-want +got):\n%s", diff)
	}
	assert.True(t, result.Loaded)
	assert.Equal(t, "run-1", result.Token)
	assert.NotZero(t, result.Hash)

	wantProfiles := []ProfileSummary{
		{Name: "Work", Default: true, ImplicitConcepts: 3, ImplicitSources: 1, ExplicitConcepts: 1, ExplicitSources: 1},
		{Name: "Home", ExplicitConcepts: 1},
	}
	if diff := cmp.Diff(wantProfiles, result.Profiles); diff != "" {
		t.Fatalf("unexpected profiles (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sample.com"}, result.Applications); diff != "" {
		t.Fatalf("unexpected applications (-want +got):\n%s", diff)
	}
	wantExtensions := []ExtensionUsage{
		{Prefix: "app", Namespace: "http://www.w3.org/2007/app", Count: 1},
		{Prefix: "lj", Namespace: "http://www.livejournal.org/rss/lj/1.0/", Count: 1},
	}
	if diff := cmp.Diff(wantExtensions, result.Extensions); diff != "" {
		t.Fatalf("unexpected extensions (-want +got):\n%s", diff)
	}
}

func TestInspectRestrictsCandidates(t *testing.T) {
	service := NewService()
	result, err := service.Inspect(t.Context(), InspectRequest{
		DocumentOptions: DocumentOptions{Extensions: []string{"lj"}},
		InputPath:       samplePath,
	})
	require.NoError(t, err)
	wantExtensions := []ExtensionUsage{
		{Prefix: "lj", Namespace: "http://www.livejournal.org/rss/lj/1.0/", Count: 1},
	}
	if diff := cmp.Diff(wantExtensions, result.Extensions); diff != "" {
		t.Fatalf("unexpected extensions (-want +got):\n%s", diff)
	}
}

func TestInspectSettingsFile(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "syndkit.yaml", "schema_version: \"v1\"\nextensions:\n  - app\n")

	service := NewService()
	result, err := service.Inspect(t.Context(), InspectRequest{
		DocumentOptions: DocumentOptions{SettingsPath: settings},
		InputPath:       samplePath,
	})
	require.NoError(t, err)
	require.Len(t, result.Extensions, 1)
	assert.Equal(t, "app", result.Extensions[0].Prefix)

	result, err = service.Inspect(t.Context(), InspectRequest{
		DocumentOptions: DocumentOptions{SettingsPath: settings, Extensions: []string{"lj"}},
		InputPath:       samplePath,
	})
	require.NoError(t, err)
	require.Len(t, result.Extensions, 1)
	assert.Equal(t, "lj", result.Extensions[0].Prefix, "request extensions override the settings file")
}

func TestInspectGeneratesToken(t *testing.T) {
	service := NewService()
	result, err := service.Inspect(t.Context(), InspectRequest{InputPath: samplePath})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "broken.apml", "<<APML/>")
	foreign := writeFile(t, dir, "foreign.xml", `<rss version="2.0"/>`)
	badSettings := writeFile(t, dir, "bad.yaml", "extensions: [lj]\n")

	tests := []struct {
		name     string
		req      InspectRequest
		wantCode errbuilder.ErrCode
	}{
		{
			name:     "missing input path",
			req:      InspectRequest{},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "missing file",
			req:      InspectRequest{InputPath: dir + "/absent.apml"},
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "malformed markup",
			req:      InspectRequest{InputPath: malformed},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "wrong root",
			req:      InspectRequest{InputPath: foreign},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "unknown extension",
			req:      InspectRequest{InputPath: samplePath, DocumentOptions: DocumentOptions{Extensions: []string{"dc"}}},
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "settings without schema version",
			req:      InspectRequest{InputPath: samplePath, DocumentOptions: DocumentOptions{SettingsPath: badSettings}},
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}

	service := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Inspect(t.Context(), tt.req)
			requireCode(t, err, tt.wantCode)
		})
	}
}
