package types

// LoadedEvent is delivered once after a document was populated successfully.
type LoadedEvent struct {
	// Source names where the document came from (a path, or "stream").
	Source string
	// Token is the caller's correlation token, generated when left empty.
	Token string
	// Loaded is false when no field at all could be read.
	Loaded bool
}

// LoadSettings configures one load.
type LoadSettings struct {
	// SupportedExtensions is the candidate set tested by discovery.
	SupportedExtensions []Descriptor

	// IsolateExtensionFailures keeps a load going when an extension fails
	// to read its markup. The failure is logged and the instance stays
	// attached. Off by default: one broken extension aborts the load.
	IsolateExtensionFailures bool

	// Source and Token are copied into the LoadedEvent.
	Source string
	Token  string

	// OnLoaded, when set, receives the completion notification.
	OnLoaded func(LoadedEvent)
}

// SaveSettings configures one save.
type SaveSettings struct {
	// AutoDetectExtensions hoists every extension namespace used anywhere
	// in the document graph to the root element.
	AutoDetectExtensions bool

	// MinimizeOutputSize drops indentation.
	MinimizeOutputSize bool

	// SupportedExtensions, when non-empty, limits which extension
	// namespaces are hoisted. Extensions outside it declare their namespace
	// locally.
	SupportedExtensions []Descriptor
}

// DefaultSaveSettings hoists extension namespaces and indents output.
func DefaultSaveSettings() SaveSettings {
	return SaveSettings{AutoDetectExtensions: true}
}

// Namespace binds a short prefix to a namespace URI.
type Namespace struct {
	Prefix string
	URI    string
}

// Well-known namespaces used while querying source trees.
const (
	XMLNamespaceURI   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)
