package models

// MediaType classifies the attachment of a post.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
	MediaNone     MediaType = "none"
)

// MediaTypes lists every recognized media type in display order of the sitemap.
var MediaTypes = []MediaType{MediaImage, MediaVideo, MediaAudio, MediaDocument, MediaNone}

var mediaTypeLabels = map[MediaType]string{
	MediaImage:    "تصویر",
	MediaVideo:    "ویدئو",
	MediaAudio:    "صوت",
	MediaDocument: "سند",
	MediaNone:     "متن",
}

// IsMediaType reports whether v is one of the five recognized values.
func IsMediaType(v string) bool {
	_, ok := ParseMediaType(v)
	return ok
}

// ParseMediaType maps a raw filter value to a MediaType.
// Unrecognized values yield ("", false), which callers treat as "all".
func ParseMediaType(v string) (MediaType, bool) {
	for _, t := range MediaTypes {
		if string(t) == v {
			return t, true
		}
	}
	return "", false
}

// Label returns the Persian label of the media type.
func (t MediaType) Label() string {
	if l, ok := mediaTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t MediaType) String() string { return string(t) }
