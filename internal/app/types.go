package app

// DocumentOptions are shared by every request that loads a document. Values
// set here override the settings file.
type DocumentOptions struct {
	SettingsPath             string
	Extensions               []string
	IsolateExtensionFailures bool
	Token                    string
}

type InspectRequest struct {
	DocumentOptions
	InputPath string
}

type InspectResult struct {
	Version        string
	Title          string
	Generator      string
	DefaultProfile string
	Loaded         bool
	Token          string
	Profiles       []ProfileSummary
	Applications   []string
	Extensions     []ExtensionUsage
	Hash           uint64
}

type ProfileSummary struct {
	Name             string
	Default          bool
	ImplicitConcepts int
	ImplicitSources  int
	ExplicitConcepts int
	ExplicitSources  int
}

// ExtensionUsage counts the entities carrying one dialect.
type ExtensionUsage struct {
	Prefix    string
	Namespace string
	Count     int
}

type NormalizeRequest struct {
	DocumentOptions
	InputPath  string
	OutputPath string
	Minimize   bool
	// LocalNamespaces disables hoisting extension namespaces to the root.
	LocalNamespaces bool
}

type NormalizeResult struct {
	OutputPath string
	Hash       uint64
}

type RoundTripRequest struct {
	DocumentOptions
	InputPath string
}

type RoundTripResult struct {
	Equal        bool
	OriginalHash uint64
	ReloadedHash uint64
	Output       string
}

type ExtensionInfo struct {
	Prefix           string
	Namespace        string
	Version          string
	DisplayName      string
	DocumentationURI string
	Description      string
}
