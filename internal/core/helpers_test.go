package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

var (
	alphaDescriptor = types.MustDescriptor(types.DescriptorInfo{
		Prefix:       "a",
		NamespaceURI: "urn:test:alpha",
		Version:      "1.0",
	})
	betaDescriptor = types.MustDescriptor(types.DescriptorInfo{
		Prefix:       "b",
		NamespaceURI: "urn:test:beta",
		Version:      "1.0",
	})
	errStubLoad = errors.New("stub load failure")
)

const hostNamespace = "urn:test:host"

// stubExtension reads the text of <prefix:value> and writes it back.
type stubExtension struct {
	desc    types.Descriptor
	value   string
	loadErr error
}

func (e *stubExtension) Descriptor() types.Descriptor { return e.desc }

func (e *stubExtension) Load(_ context.Context, el *etree.Element, _ types.LoadSettings) (bool, error) {
	e.value = Text(ChildNS(el, e.desc.NamespaceURI(), "value"))
	return e.value != "", e.loadErr
}

func (e *stubExtension) WriteTo(ctx context.Context, parent *etree.Element) error {
	if e.value == "" {
		return nil
	}
	CreateExtensionElement(ctx, parent, e.desc, "value").SetText(e.value)
	return nil
}

func (e *stubExtension) Compare(other ports.Extension) int {
	o, ok := other.(*stubExtension)
	if !ok {
		return strings.Compare(e.desc.NamespaceURI(), other.Descriptor().NamespaceURI())
	}
	return strings.Compare(e.value, o.value)
}

func stubFactory(desc types.Descriptor, loadErr error) ports.ExtensionFactory {
	return func() ports.Extension {
		return &stubExtension{desc: desc, loadErr: loadErr}
	}
}

func newStub(desc types.Descriptor, value string) *stubExtension {
	return &stubExtension{desc: desc, value: value}
}

type stubHost struct {
	ExtensionSet
	children []ports.Extensible
}

func (h *stubHost) ExtensibleChildren() []ports.Extensible { return h.children }

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(alphaDescriptor, stubFactory(alphaDescriptor, nil)))
	require.NoError(t, reg.Register(betaDescriptor, stubFactory(betaDescriptor, nil)))
	return reg
}

func parseRoot(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func render(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el)
	text, err := doc.WriteToString()
	require.NoError(t, err)
	return text
}
