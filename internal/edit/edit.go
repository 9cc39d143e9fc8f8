package edit

import (
	"fmt"
	"strings"

	"manifestkit/internal/config"
	"manifestkit/internal/dash"
	"manifestkit/internal/logger"
	"manifestkit/internal/m3u8"
)

// Format of an input manifest.
type Format int

const (
	FormatUnknown Format = iota
	FormatHLS
	FormatDASH
)

// DetectFormat sniffs manifest text: HLS master playlists start with
// #EXTM3U, DASH manifests with an XML declaration or the <MPD> root.
func DetectFormat(text string) Format {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(trimmed, "#EXTM3U"):
		return FormatHLS
	case strings.HasPrefix(trimmed, "<"):
		return FormatDASH
	}
	return FormatUnknown
}

// Apply runs every edit in the plan against the manifest text and returns
// the re-serialized result. Construction failures and unsupported operations
// abort before anything is written back.
func Apply(text string, plan *config.Plan, log logger.Logger) (string, error) {
	switch DetectFormat(text) {
	case FormatHLS:
		return applyHLS(text, plan, log)
	case FormatDASH:
		return applyDASH(text, plan, log)
	}
	return "", fmt.Errorf("unrecognized manifest format")
}

func applyHLS(text string, plan *config.Plan, log logger.Logger) (string, error) {
	doc, err := m3u8.Parse(text)
	if err != nil {
		return "", fmt.Errorf("constructing HLS document: %w", err)
	}
	for i, e := range plan.Edits {
		switch e.Op {
		case config.OpAddAudio:
			doc.AddAudioRendition(e.GroupID, e.Language, e.Name, e.URI, e.Channels)
		case config.OpAddSubtitle:
			doc.AddSubtitleRendition(e.GroupID, e.Language, e.Name, e.URI)
		case config.OpRemoveAudio:
			doc.RemoveAudioRendition(e.Language)
		case config.OpRemoveSubtitle:
			doc.RemoveSubtitleRendition(e.Language)
		case config.OpRemoveVideo:
			doc.RemoveVideoRendition(e.URI)
		case config.OpRemoveTrack:
			doc.RemoveTrackByURI(e.URI)
		}
		log.Debugf("edit %d: applied %s", i, e.Op)
	}
	return doc.Encode(), nil
}

func applyDASH(text string, plan *config.Plan, log logger.Logger) (string, error) {
	doc, err := dash.Parse(text)
	if err != nil {
		return "", fmt.Errorf("constructing DASH document: %w", err)
	}
	for i, e := range plan.Edits {
		switch e.Op {
		case config.OpAddAudio:
			doc.AddAudioStream(e.Language, e.Bandwidth, e.Codecs, e.SamplingRate, e.MimeType)
		case config.OpAddSubtitle:
			if err := doc.AddSubtitleStream(e.Language, e.FileSizeBytes, e.DurationSeconds); err != nil {
				return "", fmt.Errorf("edit %d: %w", i, err)
			}
		case config.OpRemoveAudio:
			doc.RemoveAudioStream(e.Language)
		case config.OpRemoveSubtitle:
			doc.RemoveSubtitleStream(e.Language)
		default:
			return "", fmt.Errorf("edit %d: operation %s is not supported for DASH manifests", i, e.Op)
		}
		log.Debugf("edit %d: applied %s", i, e.Op)
	}
	return doc.XML()
}
