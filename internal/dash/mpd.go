package dash

import "encoding/xml"

// Content types carried by adaptation sets.
const (
	ContentTypeVideo = "video"
	ContentTypeAudio = "audio"
	ContentTypeText  = "text"
)

// MPD is the root of a Media Presentation Description, restricted to the
// structural subset this tool edits. Attributes outside the subset are
// dropped on the first serialization.
type MPD struct {
	XMLName       xml.Name `xml:"MPD"`
	Profiles      string   `xml:"profiles,attr,omitempty"`
	Type          string   `xml:"type,attr,omitempty"`
	MinBufferTime string   `xml:"minBufferTime,attr,omitempty"`
	Periods       []Period `xml:"Period"`
}

// Period is one media content period.
type Period struct {
	ID   string          `xml:"id,attr,omitempty"`
	Sets []AdaptationSet `xml:"AdaptationSet"`
}

// AdaptationSet groups the interchangeable representations of one media
// component, such as all bitrates of one audio language.
type AdaptationSet struct {
	ID              string           `xml:"id,attr"`
	ContentType     string           `xml:"contentType,attr"`
	Lang            string           `xml:"lang,attr,omitempty"`
	Representations []Representation `xml:"Representation"`
}

// Representation is one concrete encoded variant within an adaptation set.
type Representation struct {
	ID                string `xml:"id,attr"`
	Bandwidth         int    `xml:"bandwidth,attr"`
	Codecs            string `xml:"codecs,attr,omitempty"`
	MimeType          string `xml:"mimeType,attr,omitempty"`
	AudioSamplingRate int    `xml:"audioSamplingRate,attr,omitempty"`
	Width             int    `xml:"width,attr,omitempty"`
	Height            int    `xml:"height,attr,omitempty"`
}
