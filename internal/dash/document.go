package dash

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"manifestkit/internal/ids"
)

var (
	// ErrEmptyInput reports a manifest with no content at all.
	ErrEmptyInput = errors.New("empty manifest input")
	// ErrZeroDuration reports a subtitle bandwidth calculation that would
	// divide by zero.
	ErrZeroDuration = errors.New("subtitle duration must be positive")
)

// subtitleMimeType matches what segmenters emit for fMP4-wrapped subtitles.
const subtitleMimeType = "application/mp4"

// Document is the in-memory model of one MPD manifest. It is exclusively
// owned by its constructing caller and not safe for concurrent use.
type Document struct {
	mpd MPD
}

// Parse builds a Document from MPD text. A root element other than <MPD> or
// a manifest without a Period fails fast; no partially initialized document
// is ever returned.
func Parse(text string) (*Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	var mpd MPD
	if err := xml.Unmarshal([]byte(text), &mpd); err != nil {
		return nil, fmt.Errorf("parsing MPD: %w", err)
	}
	if len(mpd.Periods) == 0 {
		return nil, errors.New("MPD contains no Period")
	}
	return &Document{mpd: mpd}, nil
}

// period returns the edited period. Multi-period manifests are edited on
// their first period only.
func (d *Document) period() *Period {
	return &d.mpd.Periods[0]
}

// AdaptationSets exposes the current adaptation sets of the edited period.
func (d *Document) AdaptationSets() []AdaptationSet {
	return d.period().Sets
}

// AddAudioStream appends an audio adaptation set with a freshly allocated
// identifier and a single representation.
func (d *Document) AddAudioStream(lang string, bandwidth int, codecs string, samplingRate int, mimeType string) {
	d.appendSet(AdaptationSet{
		ContentType: ContentTypeAudio,
		Lang:        lang,
		Representations: []Representation{{
			ID:                "0",
			Bandwidth:         bandwidth,
			Codecs:            codecs,
			MimeType:          mimeType,
			AudioSamplingRate: samplingRate,
		}},
	})
}

// AddSubtitleStream appends a subtitle adaptation set. Its bandwidth is
// derived from the subtitle file size over its duration, rounded to the
// nearest bit per second. A non-positive duration is an error, never an
// Inf/NaN bandwidth.
func (d *Document) AddSubtitleStream(lang string, fileSizeBytes int64, durationSeconds float64) error {
	if durationSeconds <= 0 {
		return fmt.Errorf("%w: got %v", ErrZeroDuration, durationSeconds)
	}
	bandwidth := int(math.Round(8 * float64(fileSizeBytes) / durationSeconds))
	d.appendSet(AdaptationSet{
		ContentType: ContentTypeText,
		Lang:        lang,
		Representations: []Representation{{
			ID:        "0",
			Bandwidth: bandwidth,
			MimeType:  subtitleMimeType,
		}},
	})
	return nil
}

// RemoveAudioStream drops every audio adaptation set in the given language
// and renumbers. Removing a language that is not present is a no-op.
func (d *Document) RemoveAudioStream(lang string) {
	d.removeSets(ContentTypeAudio, lang)
}

// RemoveSubtitleStream drops every subtitle adaptation set in the given
// language and renumbers. Removing a language that is not present is a no-op.
func (d *Document) RemoveSubtitleStream(lang string) {
	d.removeSets(ContentTypeText, lang)
}

// XML serializes the current model, pretty-printed with the standard header.
func (d *Document) XML() (string, error) {
	out, err := xml.MarshalIndent(&d.mpd, "", "  ")
	if err != nil {
		return "", fmt.Errorf("building MPD: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

// ValidateRoundTrip reports whether serialization is self-stable for the
// given manifest text: parse, serialize, reparse, serialize again, and
// compare the two serializations byte for byte. Reformatting of the original
// input on the first pass is expected and accepted.
func ValidateRoundTrip(text string) (bool, error) {
	doc, err := Parse(text)
	if err != nil {
		return false, err
	}
	first, err := doc.XML()
	if err != nil {
		return false, err
	}
	again, err := Parse(first)
	if err != nil {
		return false, err
	}
	second, err := again.XML()
	if err != nil {
		return false, err
	}
	return second == first, nil
}

func (d *Document) appendSet(set AdaptationSet) {
	p := d.period()
	existing := make([]string, 0, len(p.Sets))
	for _, s := range p.Sets {
		existing = append(existing, s.ID)
	}
	set.ID = strconv.Itoa(ids.NextID(existing))
	p.Sets = append(p.Sets, set)
}

func (d *Document) removeSets(contentType, lang string) {
	p := d.period()
	kept := p.Sets[:0:0]
	for _, set := range p.Sets {
		if set.ContentType == contentType && set.Lang == lang {
			continue
		}
		kept = append(kept, set)
	}
	if len(kept) == len(p.Sets) {
		return
	}
	p.Sets = kept
	d.renumber()
}

// renumber reassigns dense 0..n-1 identifiers to the adaptation sets and,
// independently, to each set's representations. It runs after every
// structural removal.
func (d *Document) renumber() {
	p := d.period()
	ids.Renumber(p.Sets, func(set *AdaptationSet, id string) { set.ID = id })
	for i := range p.Sets {
		ids.Renumber(p.Sets[i].Representations, func(rep *Representation, id string) { rep.ID = id })
	}
}
