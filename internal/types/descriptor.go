package types

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// DescriptorInfo carries the identity fields of an extension dialect before
// validation. It is the input to NewDescriptor.
type DescriptorInfo struct {
	Prefix           string
	NamespaceURI     string
	Version          string
	DocumentationURI string
	DisplayName      string
	Description      string
}

// Descriptor is the immutable identity of one extension dialect. Two
// descriptors name the same dialect iff their namespace URIs match.
type Descriptor struct {
	info DescriptorInfo
}

// NewDescriptor validates info and returns a descriptor. Prefix and namespace
// URI are required.
func NewDescriptor(info DescriptorInfo) (Descriptor, error) {
	info.Prefix = strings.TrimSpace(info.Prefix)
	info.NamespaceURI = strings.TrimSpace(info.NamespaceURI)
	if info.Prefix == "" {
		return Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension descriptor prefix must not be empty")
	}
	if info.NamespaceURI == "" {
		return Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension descriptor namespace must not be empty")
	}
	if strings.ContainsAny(info.Prefix, ": \t\n") || strings.EqualFold(info.Prefix, "xmlns") {
		return Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("extension descriptor prefix is not a valid xml prefix: " + info.Prefix)
	}
	return Descriptor{info: info}, nil
}

// MustDescriptor is NewDescriptor for package-level dialect declarations.
func MustDescriptor(info DescriptorInfo) Descriptor {
	d, err := NewDescriptor(info)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Descriptor) Prefix() string           { return d.info.Prefix }
func (d Descriptor) NamespaceURI() string     { return d.info.NamespaceURI }
func (d Descriptor) Version() string          { return d.info.Version }
func (d Descriptor) DocumentationURI() string { return d.info.DocumentationURI }
func (d Descriptor) DisplayName() string      { return d.info.DisplayName }
func (d Descriptor) Description() string      { return d.info.Description }

// IsZero reports whether d was never constructed through NewDescriptor.
func (d Descriptor) IsZero() bool {
	return d.info.NamespaceURI == ""
}

// SameDialect reports whether d and other identify the same namespace.
func (d Descriptor) SameDialect(other Descriptor) bool {
	return d.info.NamespaceURI == other.info.NamespaceURI
}

// Info returns a copy of the identity fields.
func (d Descriptor) Info() DescriptorInfo {
	return d.info
}

func (d Descriptor) String() string {
	return d.info.Prefix + "=" + d.info.NamespaceURI
}
