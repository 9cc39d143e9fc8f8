package m3u8

import (
	"fmt"
	"strings"
)

// Encode serializes the document in a fixed section order: header tags, audio
// renditions, subtitle renditions, closed-caption renditions, variant streams
// with their URI lines, then I-frame streams. Attribute order within each tag
// is deterministic, so encoding the same document twice yields identical text.
func (d *Document) Encode() string {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	if d.Version > 0 {
		fmt.Fprintf(&sb, "#EXT-X-VERSION:%d\n", d.Version)
	}
	if d.Independent {
		sb.WriteString("#EXT-X-INDEPENDENT-SEGMENTS\n")
	}
	for _, m := range d.Audio {
		writeMedia(&sb, m)
	}
	for _, m := range d.Subtitles {
		writeMedia(&sb, m)
	}
	for _, m := range d.Captions {
		writeMedia(&sb, m)
	}
	for _, v := range d.Variants {
		d.writeVariant(&sb, v)
	}
	for _, f := range d.IFrames {
		d.writeIFrameStream(&sb, f)
	}
	return sb.String()
}

func writeMedia(sb *strings.Builder, m Media) {
	fmt.Fprintf(sb, "#EXT-X-MEDIA:TYPE=%s", m.Type)
	if m.URI != "" {
		fmt.Fprintf(sb, ",URI=%q", m.URI)
	}
	fmt.Fprintf(sb, ",GROUP-ID=%q,LANGUAGE=%q,NAME=%q", m.GroupID, m.Language, m.Name)
	if m.InstreamID != "" {
		fmt.Fprintf(sb, ",INSTREAM-ID=%q", m.InstreamID)
	}
	fmt.Fprintf(sb, ",DEFAULT=%s,AUTOSELECT=%s", yesNo(m.Default), yesNo(m.AutoSelect))
	if m.Characteristics != "" {
		fmt.Fprintf(sb, ",CHARACTERISTICS=%q", m.Characteristics)
	}
	if m.Type == MediaAudio && m.Channels > 0 {
		fmt.Fprintf(sb, ",CHANNELS=\"%d\"", m.Channels)
	}
	sb.WriteByte('\n')
}

// writeVariant drops AUDIO, SUBTITLES, and CLOSED-CAPTIONS group references
// whose group no longer has any renditions, so the playlist stays
// self-consistent after removals.
func (d *Document) writeVariant(sb *strings.Builder, v Variant) {
	fmt.Fprintf(sb, "#EXT-X-STREAM-INF:BANDWIDTH=%d", v.Bandwidth)
	if v.AverageBandwidth > 0 {
		fmt.Fprintf(sb, ",AVERAGE-BANDWIDTH=%d", v.AverageBandwidth)
	}
	fmt.Fprintf(sb, ",CODECS=%q", v.Codecs)
	if v.Resolution != (Resolution{}) {
		fmt.Fprintf(sb, ",RESOLUTION=%s", v.Resolution)
	}
	if v.FrameRate != "" {
		fmt.Fprintf(sb, ",FRAME-RATE=%s", v.FrameRate)
	}
	if v.VideoRange != "" {
		fmt.Fprintf(sb, ",VIDEO-RANGE=%s", v.VideoRange)
	}
	if v.Audio != "" && hasGroup(d.Audio, v.Audio) {
		fmt.Fprintf(sb, ",AUDIO=%q", v.Audio)
	}
	if v.Subtitles != "" && hasGroup(d.Subtitles, v.Subtitles) {
		fmt.Fprintf(sb, ",SUBTITLES=%q", v.Subtitles)
	}
	if v.ClosedCaptions == CCNone {
		sb.WriteString(",CLOSED-CAPTIONS=NONE")
	} else if v.ClosedCaptions != "" && hasGroup(d.Captions, v.ClosedCaptions) {
		fmt.Fprintf(sb, ",CLOSED-CAPTIONS=%q", v.ClosedCaptions)
	}
	sb.WriteByte('\n')
	sb.WriteString(v.URI)
	sb.WriteByte('\n')
}

func (d *Document) writeIFrameStream(sb *strings.Builder, f IFrameStream) {
	fmt.Fprintf(sb, "#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=%d", f.Bandwidth)
	if f.AverageBandwidth > 0 {
		fmt.Fprintf(sb, ",AVERAGE-BANDWIDTH=%d", f.AverageBandwidth)
	}
	fmt.Fprintf(sb, ",CODECS=%q", f.Codecs)
	if f.Resolution != (Resolution{}) {
		fmt.Fprintf(sb, ",RESOLUTION=%s", f.Resolution)
	}
	if f.VideoRange != "" {
		fmt.Fprintf(sb, ",VIDEO-RANGE=%s", f.VideoRange)
	}
	if len(d.Captions) == 0 {
		sb.WriteString(",CLOSED-CAPTIONS=NONE")
	}
	fmt.Fprintf(sb, ",URI=%q", f.URI)
	sb.WriteByte('\n')
}

func hasGroup(list []Media, groupID string) bool {
	for _, m := range list {
		if m.GroupID == groupID {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
