package apml

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndication-kit/internal/adapters"
	"syndication-kit/internal/types"
)

func saveString(t *testing.T, doc *Document, settings types.SaveSettings) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Save(t.Context(), &buf, settings))
	return buf.String()
}

func minimal() types.SaveSettings {
	return types.SaveSettings{AutoDetectExtensions: true, MinimizeOutputSize: true}
}

func TestSourceWriteScenario(t *testing.T) {
	input := `<Source key="k1" name="n1" value="0.50" type="text/html"><Author key="a1" value="-1.00"/></Source>`
	source, _, err := testLoader().LoadSource(t.Context(),
		parseElement(t, `<Sources xmlns="http://www.apml.org/apml-0.6">`+input+`</Sources>`).ChildElements()[0],
		loadSettings())
	require.NoError(t, err)

	parent := etree.NewElement("Sources")
	parent.CreateAttr("xmlns", NamespaceURI)
	require.NoError(t, source.WriteTo(t.Context(), parent))

	tree := etree.NewDocument()
	tree.SetRoot(parent.ChildElements()[0])
	got, err := tree.WriteToString()
	require.NoError(t, err)
	if diff := cmp.Diff(input, got); diff != "" {
		t.Fatalf("unexpected markup (-want +got):\n%s", diff)
	}
}

func TestSaveAttributeOrder(t *testing.T) {
	updated := time.Date(2007, 3, 11, 1, 55, 0, 0, time.UTC)
	doc := NewDocument()
	doc.Body.Profiles = []*Profile{{
		Name: "p",
		Implicit: Attention{
			Concepts: []*Concept{{Key: "k", Value: types.MustScore("1"), From: "f", Updated: updated}},
			Sources: []*Source{{
				Key: "s", Name: "n", Value: types.MustScore("-0.5"), Type: "t", From: "f", Updated: updated,
				Authors: []*Author{{Key: "a", Value: types.MustScore("0.125"), From: "f", Updated: updated}},
			}},
		},
	}}

	out := saveString(t, doc, minimal())
	for _, want := range []string{
		`<Concept key="k" value="1.00" from="f" updated="2007-03-11T01:55:00Z"/>`,
		`<Source key="s" name="n" value="-0.50" type="t" from="f" updated="2007-03-11T01:55:00Z">`,
		`<Author key="a" value="0.125" from="f" updated="2007-03-11T01:55:00Z"/>`,
		`<Profile name="p"><ImplicitData><Concepts>`,
		`</Concepts><Sources>`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "ExplicitData")
}

func TestSaveOmitsUnsetFields(t *testing.T) {
	doc := NewDocument()
	doc.Body.Profiles = []*Profile{{
		Explicit: Attention{
			Concepts: []*Concept{{Key: "only-key"}},
			Sources:  []*Source{{}},
		},
	}}

	out := saveString(t, doc, minimal())
	assert.Contains(t, out, `<Concept key="only-key"/>`)
	assert.Contains(t, out, `<Source/>`)
	assert.Contains(t, out, `<Profile><ExplicitData>`)
	assert.Contains(t, out, `<Head/>`)
	for _, attr := range []string{"value=", "from=", "updated=", "name=", "defaultprofile="} {
		assert.NotContains(t, out, attr)
	}
	assert.NotContains(t, out, "<Title")

	reloaded := loadBytes(t, []byte(out), loadSettings())
	concept := reloaded.Body.Profiles[0].Explicit.Concepts[0]
	assert.False(t, concept.Value.IsSet())
	assert.True(t, concept.Updated.IsZero())
	assert.Empty(t, concept.From)
	assert.Empty(t, reloaded.Head.Title)
}

func TestSaveHoistsNestedExtensionNamespace(t *testing.T) {
	mood := adapters.NewLiveJournalExtension()
	mood.Context().Mood = "deep"
	author := &Author{Key: "a"}
	author.AddExtension(mood)

	doc := NewDocument()
	doc.Body.Profiles = []*Profile{{
		Name:     "p",
		Explicit: Attention{Sources: []*Source{{Key: "s", Authors: []*Author{author}}}},
	}}

	t.Run("auto detect", func(t *testing.T) {
		tree, err := doc.Tree(t.Context(), minimal())
		require.NoError(t, err)
		decl := tree.Root().SelectAttr("xmlns:lj")
		require.NotNil(t, decl)
		assert.Equal(t, adapters.LiveJournalDescriptor.NamespaceURI(), decl.Value)

		out := saveString(t, doc, minimal())
		assert.Equal(t, 1, strings.Count(out, "xmlns:lj="))
		assert.Contains(t, out, `<Author key="a"><lj:mood>deep</lj:mood></Author>`)
	})

	t.Run("local declarations", func(t *testing.T) {
		settings := minimal()
		settings.AutoDetectExtensions = false
		tree, err := doc.Tree(t.Context(), settings)
		require.NoError(t, err)
		assert.Nil(t, tree.Root().SelectAttr("xmlns:lj"))

		out := saveString(t, doc, settings)
		assert.Contains(t, out, `<lj:mood xmlns:lj="http://www.livejournal.org/rss/lj/1.0/">deep</lj:mood>`)
	})

	t.Run("outside the hoisted set", func(t *testing.T) {
		settings := minimal()
		settings.SupportedExtensions = []types.Descriptor{adapters.PublishingControlDescriptor}
		tree, err := doc.Tree(t.Context(), settings)
		require.NoError(t, err)
		assert.Nil(t, tree.Root().SelectAttr("xmlns:lj"))
	})
}

func TestSaveIndentation(t *testing.T) {
	doc := NewDocument()
	doc.Head.Title = "t"

	indented := saveString(t, doc, types.DefaultSaveSettings())
	assert.Contains(t, indented, "\n  <Head>\n    <Title>t</Title>\n  </Head>\n")

	compact := saveString(t, doc, minimal())
	assert.Contains(t, compact, `<Head><Title>t</Title></Head>`)
}

func TestSaveRootShape(t *testing.T) {
	tree, err := NewDocument().Tree(t.Context(), minimal())
	require.NoError(t, err)
	root := tree.Root()
	assert.Equal(t, "APML", root.Tag)
	assert.Equal(t, NamespaceURI, root.SelectAttrValue("xmlns", ""))
	assert.Equal(t, Version, root.SelectAttrValue("version", ""))
}

func TestSavePreconditions(t *testing.T) {
	err := NewDocument().Save(t.Context(), nil, minimal())
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	var doc *Document
	_, err = doc.Tree(t.Context(), minimal())
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestRoundTrip(t *testing.T) {
	original := loadSample(t)

	tests := []struct {
		name     string
		settings types.SaveSettings
	}{
		{name: "default", settings: types.DefaultSaveSettings()},
		{name: "minimized", settings: minimal()},
		{name: "local declarations", settings: types.SaveSettings{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := saveString(t, original, tt.settings)
			reloaded := loadBytes(t, []byte(first), loadSettings())
			if c := original.Compare(reloaded); c != 0 {
				t.Fatalf("round trip changed the document (compare=%d):\n%s", c, first)
			}
			assert.True(t, Equal(original, reloaded))

			second := saveString(t, reloaded, tt.settings)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("second save differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRoundTripBuiltDocument(t *testing.T) {
	control := adapters.NewPublishingControlExtension()
	draft := true
	control.Context().Draft = &draft

	concept := &Concept{Key: "go", Value: types.MustScore("0.75"), Updated: time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("X", -3*60*60))}
	concept.AddExtension(control)

	app := &Application{Name: "reader"}
	app.Content = []*etree.Element{parseElement(t, `<prefs xmlns="urn:reader"><font size="12"/></prefs>`)}

	doc := NewDocument()
	doc.Head.Title = "built"
	doc.Body.DefaultProfile = "main"
	doc.Body.Profiles = []*Profile{{Name: "main", Explicit: Attention{Concepts: []*Concept{concept}}}}
	doc.Body.Applications = []*Application{app}

	out := saveString(t, doc, types.DefaultSaveSettings())
	reloaded := loadBytes(t, []byte(out), loadSettings())
	if c := doc.Compare(reloaded); c != 0 {
		t.Fatalf("round trip changed the document (compare=%d):\n%s", c, out)
	}
}

func TestSaveKeepsApplicationMixedContent(t *testing.T) {
	app := &Application{Name: "notes"}
	app.Content = []*etree.Element{parseElement(t, `<p xmlns="urn:notes"><b>a</b> <i>b</i></p>`)}
	doc := NewDocument()
	doc.Body.Applications = []*Application{app}

	out := saveString(t, doc, types.DefaultSaveSettings())
	assert.Contains(t, out, `<p xmlns="urn:notes"><b>a</b> <i>b</i></p>`)

	reloaded := loadBytes(t, []byte(out), loadSettings())
	assert.True(t, Equal(doc, reloaded), out)
}
