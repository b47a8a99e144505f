package recorder

import "strings"

// Medium is the category of a recorder: audio, video or data.
type Medium int

const (
	MediumAudio Medium = iota
	MediumVideo
	MediumData
)

// String returns the medium name used in logs and metrics labels.
func (m Medium) String() string {
	switch m {
	case MediumAudio:
		return "audio"
	case MediumVideo:
		return "video"
	case MediumData:
		return "data"
	default:
		return "unknown"
	}
}

// Tag returns the single-letter medium tag persisted in the info record.
func (m Medium) Tag() string {
	switch m {
	case MediumAudio:
		return "a"
	case MediumVideo:
		return "v"
	case MediumData:
		return "d"
	default:
		return ""
	}
}

// codecMedia is the recognized codec set; the codec name determines the
// medium. Unrecognized codecs fail construction, no silent fallback.
var codecMedia = map[string]Medium{
	"vp8":       MediumVideo,
	"vp9":       MediumVideo,
	"h264":      MediumVideo,
	"av1":       MediumVideo,
	"h265":      MediumVideo,
	"opus":      MediumAudio,
	"multiopus": MediumAudio,
	"g711":      MediumAudio,
	"pcmu":      MediumAudio,
	"pcma":      MediumAudio,
	"g722":      MediumAudio,
	"l16-48":    MediumAudio,
	"l16":       MediumAudio,
	"text":      MediumData,
	"binary":    MediumData,
}

// ResolveCodec maps a codec name to its medium, case-insensitively.
func ResolveCodec(codec string) (Medium, error) {
	if codec == "" {
		return 0, ErrMissingCodec
	}
	medium, ok := codecMedia[strings.ToLower(codec)]
	if !ok {
		return 0, ErrUnsupportedCodec
	}
	return medium, nil
}
