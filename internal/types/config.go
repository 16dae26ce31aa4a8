package types

// SettingsFile is the top-level structure of a syndkit.yaml settings file.
//
// It selects which registered extension dialects take part in discovery and
// how documents are written back.
type SettingsFile struct {
	// SchemaVersion identifies the file format version.
	SchemaVersion string `yaml:"schema_version"`

	// Extensions lists namespace URIs or prefixes of the candidate
	// dialects. Empty means every registered dialect.
	Extensions []string `yaml:"extensions,omitempty"`

	Load LoadSection `yaml:"load"`
	Save SaveSection `yaml:"save"`
}

type LoadSection struct {
	IsolateExtensionFailures bool `yaml:"isolate_extension_failures"`
}

type SaveSection struct {
	// AutoDetectExtensions defaults to true when omitted.
	AutoDetectExtensions *bool `yaml:"auto_detect_extensions,omitempty"`
	MinimizeOutputSize   bool  `yaml:"minimize_output_size"`
}
