package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Op identifies one edit operation in a plan.
type Op string

const (
	OpAddAudio       Op = "add-audio"
	OpAddSubtitle    Op = "add-subtitle"
	OpRemoveAudio    Op = "remove-audio"
	OpRemoveSubtitle Op = "remove-subtitle"
	OpRemoveVideo    Op = "remove-video"
	OpRemoveTrack    Op = "remove-track"
)

// Edit is one processed edit operation. Which fields matter depends on the
// operation and on the manifest format it is applied to.
type Edit struct {
	Op              Op
	Language        string
	GroupID         string
	Name            string
	URI             string
	Channels        int
	Bandwidth       int
	Codecs          string
	SamplingRate    int
	MimeType        string
	FileSizeBytes   int64
	DurationSeconds float64
}

// Plan is a named batch of edits applied to one manifest.
type Plan struct {
	Name  string
	Edits []Edit
}

// rawEdit is the intermediate structure that maps directly onto the JSON
// file, before operation names are checked.
type rawEdit struct {
	Op              string  `json:"Op"`
	Language        string  `json:"Language,omitempty"`
	GroupID         string  `json:"GroupId,omitempty"`
	Name            string  `json:"Name,omitempty"`
	URI             string  `json:"Uri,omitempty"`
	Channels        int     `json:"Channels,omitempty"`
	Bandwidth       int     `json:"Bandwidth,omitempty"`
	Codecs          string  `json:"Codecs,omitempty"`
	SamplingRate    int     `json:"SamplingRate,omitempty"`
	MimeType        string  `json:"MimeType,omitempty"`
	FileSizeBytes   int64   `json:"FileSizeBytes,omitempty"`
	DurationSeconds float64 `json:"DurationSeconds,omitempty"`
}

type rawPlan struct {
	Name  string    `json:"Name"`
	Edits []rawEdit `json:"Edits"`
}

// LoadPlan reads and parses an edit plan from the given path, rejecting
// unknown operations up front so a bad plan never half-applies.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file at %s: %w", path, err)
	}

	var raw rawPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan JSON: %w", err)
	}

	edits := make([]Edit, 0, len(raw.Edits))
	for i, re := range raw.Edits {
		op := Op(re.Op)
		switch op {
		case OpAddAudio, OpAddSubtitle, OpRemoveAudio, OpRemoveSubtitle, OpRemoveVideo, OpRemoveTrack:
		default:
			return nil, fmt.Errorf("edit %d: unknown operation %q", i, re.Op)
		}
		edits = append(edits, Edit{
			Op:              op,
			Language:        re.Language,
			GroupID:         re.GroupID,
			Name:            re.Name,
			URI:             re.URI,
			Channels:        re.Channels,
			Bandwidth:       re.Bandwidth,
			Codecs:          re.Codecs,
			SamplingRate:    re.SamplingRate,
			MimeType:        re.MimeType,
			FileSizeBytes:   re.FileSizeBytes,
			DurationSeconds: re.DurationSeconds,
		})
	}

	return &Plan{Name: raw.Name, Edits: edits}, nil
}
