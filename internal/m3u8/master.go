package m3u8

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Media types accepted in #EXT-X-MEDIA tags.
const (
	MediaAudio     = "AUDIO"
	MediaSubtitles = "SUBTITLES"
	MediaCaptions  = "CLOSED-CAPTIONS"
)

// CCNone is the literal CLOSED-CAPTIONS value meaning "no captions group".
const CCNone = "NONE"

// defaultAudioChannels is assumed when an audio rendition carries no
// CHANNELS attribute.
const defaultAudioChannels = 2

var (
	// ErrEmptyInput reports a playlist with no content at all.
	ErrEmptyInput = errors.New("empty playlist input")
	// ErrMissingHeader reports input whose first line is not #EXTM3U.
	ErrMissingHeader = errors.New(`playlist does not start with "#EXTM3U"`)
)

// Resolution is a WIDTHxHEIGHT pair from a RESOLUTION attribute.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Media is one alternative rendition (#EXT-X-MEDIA): an audio track,
// subtitle track, or closed-caption service referenced by variant streams
// through its group.
type Media struct {
	Type            string
	GroupID         string
	Language        string
	Name            string
	URI             string
	Default         bool
	AutoSelect      bool
	InstreamID      string
	Characteristics string
	// Channels is the audio channel count. Only meaningful for AUDIO.
	Channels int
}

// Variant is one #EXT-X-STREAM-INF entry together with the URI line that
// follows it.
type Variant struct {
	// RelationID is a surrogate key assigned at parse time. I-frame streams
	// associated with this variant carry it, so the association survives even
	// when two variants share a codecs+resolution pair.
	RelationID       string
	Bandwidth        int64
	AverageBandwidth int64
	Codecs           string
	Resolution       Resolution
	// FrameRate is kept verbatim; encoders disagree on decimal formatting.
	FrameRate      string
	VideoRange     string
	Audio          string
	Subtitles      string
	ClosedCaptions string
	URI            string
}

// JoinKey is the codecs+resolution string the format forces us to use when
// first associating an I-frame stream with its parent variant.
func (v Variant) JoinKey() string {
	return joinKey(v.Codecs, v.Resolution)
}

// IFrameStream is a keyframe-only trick-play stream
// (#EXT-X-I-FRAME-STREAM-INF).
type IFrameStream struct {
	// VariantID holds the RelationID of the owning variant, or "" when no
	// variant matched at parse time.
	VariantID        string
	Bandwidth        int64
	AverageBandwidth int64
	Codecs           string
	Resolution       Resolution
	VideoRange       string
	URI              string
}

// JoinKey mirrors Variant.JoinKey for association at parse time.
func (f IFrameStream) JoinKey() string {
	return joinKey(f.Codecs, f.Resolution)
}

func joinKey(codecs string, res Resolution) string {
	return codecs + "_" + res.String()
}

// Document is the in-memory model of one HLS master playlist. It owns every
// track list; mutations never reach back into raw text. A Document is not
// safe for concurrent use.
type Document struct {
	Version     int
	Independent bool
	Audio       []Media
	Subtitles   []Media
	Captions    []Media
	Variants    []Variant
	IFrames     []IFrameStream
}

// Parse builds a Document from master playlist text. It fails fast on input
// that is empty or lacks the #EXTM3U header and never returns a partially
// initialized document.
func Parse(text string) (*Document, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}
	if lines[0] != "#EXTM3U" {
		return nil, ErrMissingHeader
	}

	doc := new(Document)
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		name, params, _ := strings.Cut(line, ":")
		switch name {
		case "#EXT-X-VERSION":
			v, err := strconv.Atoi(params)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", name, err)
			}
			doc.Version = v
		case "#EXT-X-INDEPENDENT-SEGMENTS":
			doc.Independent = true
		case "#EXT-X-MEDIA":
			media, err := parseMedia(params)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", name, err)
			}
			switch media.Type {
			case MediaAudio:
				doc.Audio = append(doc.Audio, media)
			case MediaSubtitles:
				doc.Subtitles = append(doc.Subtitles, media)
			case MediaCaptions:
				doc.Captions = append(doc.Captions, media)
			}
		case "#EXT-X-STREAM-INF":
			variant, err := parseVariant(params)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", name, err)
			}
			if i+1 >= len(lines) || strings.HasPrefix(lines[i+1], "#") {
				return nil, fmt.Errorf("%s is not followed by a URI line", name)
			}
			i++
			variant.URI = lines[i]
			variant.RelationID = newRelationID()
			doc.Variants = append(doc.Variants, variant)
		case "#EXT-X-I-FRAME-STREAM-INF":
			frame, err := parseIFrameStream(params)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", name, err)
			}
			doc.IFrames = append(doc.IFrames, frame)
		}
	}

	// Associate each I-frame stream with the first variant sharing its
	// codecs+resolution pair. After this point only the surrogate key is
	// used, so duplicate pairs cannot cross wires on later edits.
	for i, frame := range doc.IFrames {
		for _, v := range doc.Variants {
			if v.JoinKey() == frame.JoinKey() {
				doc.IFrames[i].VariantID = v.RelationID
				break
			}
		}
	}

	return doc, nil
}

func parseMedia(params string) (Media, error) {
	attrs, err := parseAttributes(params)
	if err != nil {
		return Media{}, err
	}

	typ, ok := attrs.Get("TYPE")
	if !ok {
		return Media{}, errors.New("media tag missing TYPE")
	}
	if typ != MediaAudio && typ != MediaSubtitles && typ != MediaCaptions {
		return Media{}, fmt.Errorf("unsupported media type %q", typ)
	}

	media := Media{Type: typ}
	for _, attr := range attrs {
		switch attr.Key {
		case "GROUP-ID":
			media.GroupID = attr.Value
		case "LANGUAGE":
			media.Language = attr.Value
		case "NAME":
			media.Name = attr.Value
		case "URI":
			media.URI = attr.Value
		case "DEFAULT":
			media.Default, err = parseYesNo(attr.Key, attr.Value)
		case "AUTOSELECT":
			media.AutoSelect, err = parseYesNo(attr.Key, attr.Value)
		case "INSTREAM-ID":
			media.InstreamID = attr.Value
		case "CHARACTERISTICS":
			media.Characteristics = attr.Value
		case "CHANNELS":
			// CHANNELS may carry qualifiers after a slash, e.g. "16/JOC";
			// only the leading count matters here.
			count, _, _ := strings.Cut(attr.Value, "/")
			media.Channels, err = strconv.Atoi(count)
		}
		if err != nil {
			return Media{}, fmt.Errorf("attribute %s: %w", attr.Key, err)
		}
	}
	if media.Type == MediaAudio && media.Channels == 0 {
		media.Channels = defaultAudioChannels
	}
	return media, nil
}

func parseVariant(params string) (Variant, error) {
	attrs, err := parseAttributes(params)
	if err != nil {
		return Variant{}, err
	}
	if _, ok := attrs.Get("BANDWIDTH"); !ok {
		return Variant{}, errors.New("variant stream missing BANDWIDTH")
	}

	var variant Variant
	for _, attr := range attrs {
		switch attr.Key {
		case "BANDWIDTH":
			variant.Bandwidth, err = strconv.ParseInt(attr.Value, 10, 64)
		case "AVERAGE-BANDWIDTH":
			variant.AverageBandwidth, err = strconv.ParseInt(attr.Value, 10, 64)
		case "CODECS":
			variant.Codecs = attr.Value
		case "RESOLUTION":
			variant.Resolution, err = parseResolution(attr.Value)
		case "FRAME-RATE":
			variant.FrameRate = attr.Value
		case "VIDEO-RANGE":
			variant.VideoRange = attr.Value
		case "AUDIO":
			variant.Audio = attr.Value
		case "SUBTITLES":
			variant.Subtitles = attr.Value
		case "CLOSED-CAPTIONS":
			variant.ClosedCaptions = attr.Value
		}
		if err != nil {
			return Variant{}, fmt.Errorf("attribute %s: %w", attr.Key, err)
		}
	}
	return variant, nil
}

func parseIFrameStream(params string) (IFrameStream, error) {
	attrs, err := parseAttributes(params)
	if err != nil {
		return IFrameStream{}, err
	}

	var frame IFrameStream
	for _, attr := range attrs {
		switch attr.Key {
		case "BANDWIDTH":
			frame.Bandwidth, err = strconv.ParseInt(attr.Value, 10, 64)
		case "AVERAGE-BANDWIDTH":
			frame.AverageBandwidth, err = strconv.ParseInt(attr.Value, 10, 64)
		case "CODECS":
			frame.Codecs = attr.Value
		case "RESOLUTION":
			frame.Resolution, err = parseResolution(attr.Value)
		case "VIDEO-RANGE":
			frame.VideoRange = attr.Value
		case "URI":
			frame.URI = attr.Value
		}
		if err != nil {
			return IFrameStream{}, fmt.Errorf("attribute %s: %w", attr.Key, err)
		}
	}
	if frame.URI == "" || frame.Bandwidth == 0 {
		return IFrameStream{}, errors.New("I-frame stream missing URI or BANDWIDTH")
	}
	return frame, nil
}

func parseYesNo(key, value string) (bool, error) {
	switch value {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s value %q", key, value)
}

func parseResolution(value string) (Resolution, error) {
	var res Resolution
	if _, err := fmt.Sscanf(value, "%dx%d", &res.Width, &res.Height); err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution %q", value)
	}
	return res, nil
}
