package m3u8

import (
	"slices"

	"manifestkit/internal/locale"

	"github.com/google/uuid"
)

// AddAudioRendition appends an audio rendition to the given group with
// AUTOSELECT=YES and DEFAULT=NO. A zero or negative channel count falls back
// to stereo. When name is empty, the language's display name is used.
func (d *Document) AddAudioRendition(groupID, language, name, uri string, channels int) {
	if channels <= 0 {
		channels = defaultAudioChannels
	}
	if name == "" {
		name = locale.Name(language)
	}
	d.Audio = append(d.Audio, Media{
		Type:       MediaAudio,
		GroupID:    groupID,
		Language:   language,
		Name:       name,
		URI:        uri,
		AutoSelect: true,
		Channels:   channels,
	})
}

// AddSubtitleRendition appends a subtitle rendition to the given group with
// AUTOSELECT=YES and DEFAULT=NO.
func (d *Document) AddSubtitleRendition(groupID, language, name, uri string) {
	if name == "" {
		name = locale.Name(language)
	}
	d.Subtitles = append(d.Subtitles, Media{
		Type:       MediaSubtitles,
		GroupID:    groupID,
		Language:   language,
		Name:       name,
		URI:        uri,
		AutoSelect: true,
	})
}

// RemoveAudioRendition drops every audio rendition in the given language.
// Removing a language that is not present is a no-op, not an error.
func (d *Document) RemoveAudioRendition(language string) {
	d.Audio = removeByLanguage(d.Audio, language)
}

// RemoveSubtitleRendition drops every subtitle rendition in the given
// language. Removing a language that is not present is a no-op.
func (d *Document) RemoveSubtitleRendition(language string) {
	d.Subtitles = removeByLanguage(d.Subtitles, language)
}

// RemoveVideoRendition removes the variant stream with the given URI, along
// with every I-frame stream associated with it. The format has no native link
// between the two, so the association rides on the surrogate relation key
// assigned at parse time.
func (d *Document) RemoveVideoRendition(uri string) {
	var removed []string
	kept := d.Variants[:0:0]
	for _, v := range d.Variants {
		if v.URI == uri {
			removed = append(removed, v.RelationID)
			continue
		}
		kept = append(kept, v)
	}
	if len(removed) == 0 {
		return
	}
	d.Variants = kept

	frames := d.IFrames[:0:0]
	for _, f := range d.IFrames {
		if f.VariantID != "" && slices.Contains(removed, f.VariantID) {
			continue
		}
		frames = append(frames, f)
	}
	d.IFrames = frames
}

// RemoveIFrameStream removes the I-frame stream with the given URI, leaving
// its parent variant in place.
func (d *Document) RemoveIFrameStream(uri string) {
	kept := d.IFrames[:0:0]
	for _, f := range d.IFrames {
		if f.URI == uri {
			continue
		}
		kept = append(kept, f)
	}
	d.IFrames = kept
}

// MediaURIs holds every URI in the document, grouped by track category.
type MediaURIs struct {
	Audio     []string
	Subtitles []string
	Captions  []string
	Video     []string
	IFrame    []string
}

// MediaURIs collects the URIs of all five track categories. Renditions
// without a URI (typically closed captions) are skipped.
func (d *Document) MediaURIs() MediaURIs {
	var uris MediaURIs
	uris.Audio = mediaURIList(d.Audio)
	uris.Subtitles = mediaURIList(d.Subtitles)
	uris.Captions = mediaURIList(d.Captions)
	for _, v := range d.Variants {
		uris.Video = append(uris.Video, v.URI)
	}
	for _, f := range d.IFrames {
		uris.IFrame = append(uris.IFrame, f.URI)
	}
	return uris
}

// RemoveTrackByURI classifies uri against all five track categories and
// routes to the matching remover. In a well-formed playlist a URI belongs to
// exactly one category; a URI found nowhere is a no-op.
func (d *Document) RemoveTrackByURI(uri string) {
	uris := d.MediaURIs()
	switch {
	case slices.Contains(uris.Audio, uri):
		if lang, ok := languageForURI(d.Audio, uri); ok {
			d.RemoveAudioRendition(lang)
		}
	case slices.Contains(uris.Subtitles, uri):
		if lang, ok := languageForURI(d.Subtitles, uri); ok {
			d.RemoveSubtitleRendition(lang)
		}
	case slices.Contains(uris.Captions, uri):
		kept := d.Captions[:0:0]
		for _, m := range d.Captions {
			if m.URI == uri {
				continue
			}
			kept = append(kept, m)
		}
		d.Captions = kept
	case slices.Contains(uris.Video, uri):
		d.RemoveVideoRendition(uri)
	case slices.Contains(uris.IFrame, uri):
		d.RemoveIFrameStream(uri)
	}
}

// ValidateRoundTrip reports whether the serializer is self-stable: encoding,
// reparsing, and encoding again yields byte-identical text. It says nothing
// about fidelity to the text the document was originally parsed from.
func (d *Document) ValidateRoundTrip() (bool, error) {
	first := d.Encode()
	reparsed, err := Parse(first)
	if err != nil {
		return false, err
	}
	return reparsed.Encode() == first, nil
}

func removeByLanguage(list []Media, language string) []Media {
	kept := list[:0:0]
	for _, m := range list {
		if m.Language == language {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func languageForURI(list []Media, uri string) (string, bool) {
	for _, m := range list {
		if m.URI == uri {
			return m.Language, true
		}
	}
	return "", false
}

func mediaURIList(list []Media) []string {
	var uris []string
	for _, m := range list {
		if m.URI != "" {
			uris = append(uris, m.URI)
		}
	}
	return uris
}

// newRelationID mints the surrogate key tying I-frame streams to their
// parent variant. Only equality of the key matters, never its contents.
func newRelationID() string {
	return uuid.NewString()
}
