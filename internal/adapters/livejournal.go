package adapters

import (
	"context"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"

	"syndication-kit/internal/core"
	"syndication-kit/internal/ports"
	"syndication-kit/internal/types"
)

// LiveJournalDescriptor identifies the LiveJournal post metadata dialect
// (mood, security, user picture and music).
var LiveJournalDescriptor = types.MustDescriptor(types.DescriptorInfo{
	Prefix:           "lj",
	NamespaceURI:     "http://www.livejournal.org/rss/lj/1.0/",
	Version:          "1.0",
	DocumentationURI: "http://www.livejournal.com/developer/",
	DisplayName:      "LiveJournal",
	Description:      "Mood, security level, user picture and music of a journal post.",
})

// Security is the visibility of a journal post.
type Security string

const (
	SecurityUnset   Security = ""
	SecurityPublic  Security = "public"
	SecurityPrivate Security = "private"
	SecurityUsemask Security = "usemask"
)

func parseSecurity(value string) (Security, bool) {
	switch Security(strings.ToLower(strings.TrimSpace(value))) {
	case SecurityPublic:
		return SecurityPublic, true
	case SecurityPrivate:
		return SecurityPrivate, true
	case SecurityUsemask:
		return SecurityUsemask, true
	default:
		return SecurityUnset, false
	}
}

// LiveJournal holds the fields of the dialect. Empty strings, a zero mood id
// and SecurityUnset are unset.
type LiveJournal struct {
	Mood    string
	Picture string
	Music   string

	moodID   int
	security Security
}

func (c *LiveJournal) MoodID() int { return c.moodID }

// SetMoodID rejects negative ids. Zero clears the field.
func (c *LiveJournal) SetMoodID(id int) error {
	if id < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lj mood id must not be negative: " + strconv.Itoa(id))
	}
	c.moodID = id
	return nil
}

func (c *LiveJournal) Security() Security { return c.security }

// SetSecurity accepts the known levels and SecurityUnset.
func (c *LiveJournal) SetSecurity(level Security) error {
	if level == SecurityUnset {
		c.security = level
		return nil
	}
	parsed, ok := parseSecurity(string(level))
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown lj security level: " + string(level))
	}
	c.security = parsed
	return nil
}

type LiveJournalExtension struct {
	context LiveJournal
}

func NewLiveJournalExtension() *LiveJournalExtension {
	return &LiveJournalExtension{}
}

func (e *LiveJournalExtension) Context() *LiveJournal {
	return &e.context
}

func (e *LiveJournalExtension) Descriptor() types.Descriptor {
	return LiveJournalDescriptor
}

func (e *LiveJournalExtension) Load(_ context.Context, el *etree.Element, _ types.LoadSettings) (bool, error) {
	uri := LiveJournalDescriptor.NamespaceURI()
	loaded := false
	if mood := core.ChildNS(el, uri, "mood"); mood != nil {
		if text := core.Text(mood); text != "" {
			e.context.Mood = text
			loaded = true
		}
		if raw, ok := core.AttrValue(mood, "id"); ok {
			id, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return loaded, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("lj:mood id is not an integer: '" + raw + "'").
					WithCause(err)
			}
			if err := e.context.SetMoodID(id); err != nil {
				return loaded, err
			}
			loaded = true
		}
	}
	if security := core.ChildNS(el, uri, "security"); security != nil {
		value := core.Text(security)
		level, ok := parseSecurity(value)
		if !ok {
			return loaded, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unknown lj security level: '" + value + "'")
		}
		e.context.security = level
		loaded = true
	}
	if picture := core.Text(core.ChildNS(el, uri, "picture")); picture != "" {
		e.context.Picture = picture
		loaded = true
	}
	if music := core.Text(core.ChildNS(el, uri, "music")); music != "" {
		e.context.Music = music
		loaded = true
	}
	return loaded, nil
}

// Claims reports whether el is one of the elements Load reads.
func (e *LiveJournalExtension) Claims(el *etree.Element) bool {
	return core.IsFirstChildNS(el, LiveJournalDescriptor.NamespaceURI(), "mood", "security", "picture", "music")
}

func (e *LiveJournalExtension) WriteTo(ctx context.Context, parent *etree.Element) error {
	c := e.context
	if c.Mood != "" || c.moodID > 0 {
		mood := core.CreateExtensionElement(ctx, parent, LiveJournalDescriptor, "mood")
		if c.moodID > 0 {
			mood.CreateAttr("id", strconv.Itoa(c.moodID))
		}
		if c.Mood != "" {
			mood.SetText(c.Mood)
		}
	}
	if c.security != SecurityUnset {
		core.CreateExtensionElement(ctx, parent, LiveJournalDescriptor, "security").SetText(string(c.security))
	}
	if c.Picture != "" {
		core.CreateExtensionElement(ctx, parent, LiveJournalDescriptor, "picture").SetText(c.Picture)
	}
	if c.Music != "" {
		// Track titles routinely carry markup characters.
		core.CreateExtensionElement(ctx, parent, LiveJournalDescriptor, "music").CreateCData(c.Music)
	}
	return nil
}

func (e *LiveJournalExtension) Compare(other ports.Extension) int {
	o, ok := other.(*LiveJournalExtension)
	if !ok {
		return compareForeign(e, other)
	}
	return core.CompareChain(
		strings.Compare(e.context.Mood, o.context.Mood),
		e.context.moodID-o.context.moodID,
		strings.Compare(string(e.context.security), string(o.context.security)),
		strings.Compare(e.context.Picture, o.context.Picture),
		strings.Compare(e.context.Music, o.context.Music),
	)
}

var (
	_ ports.Extension      = (*LiveJournalExtension)(nil)
	_ ports.ElementClaimer = (*LiveJournalExtension)(nil)
)
