package core

// SubtitleMode distinguishes the three subtitle states: no subtitle stream
// exists at all, subtitles were explicitly declined, or a concrete track
// was selected.
type SubtitleMode int

const (
	SubtitleUnavailable SubtitleMode = iota
	SubtitleDisabled
	SubtitleSelected
)

// Integer encoding of the subtitle modes used on the wire by the remote
// server. Everything above the wire boundary works with SubtitleMode.
const (
	WireSubtitleDisabled    = -1
	WireSubtitleUnavailable = -2
)

// SubtitleSelection is the result of resolving a subtitle request against
// the streams of a media source. AllTracks retains the full candidate set
// so the player surface can offer track switching without re-querying the
// server.
type SubtitleSelection struct {
	Mode      SubtitleMode  `json:"mode"`
	Enabled   bool          `json:"enabled"`
	Track     int           `json:"track"`
	Format    string        `json:"format"`
	URL       string        `json:"url,omitempty"`
	AllTracks []MediaStream `json:"all_tracks"`
}

// WireIndex returns the track index in the remote server's integer
// encoding: -2 when no subtitle exists, -1 when explicitly disabled,
// otherwise the selected track index.
func (s *SubtitleSelection) WireIndex() int {
	switch s.Mode {
	case SubtitleUnavailable:
		return WireSubtitleUnavailable
	case SubtitleDisabled:
		return WireSubtitleDisabled
	default:
		return s.Track
	}
}

// Toggle flips the enabled flag. It is a no-op when no subtitle stream
// exists at all.
func (s *SubtitleSelection) Toggle() {
	if s.Mode == SubtitleUnavailable {
		return
	}
	s.Enabled = !s.Enabled
}

// SubtitleRequest expresses what the caller wants from SelectSubtitle:
// a concrete track index, explicitly no subtitle, or no preference.
type SubtitleRequest struct {
	kind  subtitleRequestKind
	index int
}

type subtitleRequestKind int

const (
	requestUnset subtitleRequestKind = iota
	requestNone
	requestIndex
)

// SubtitleIndex requests the subtitle stream with the given index.
func SubtitleIndex(i int) SubtitleRequest {
	return SubtitleRequest{kind: requestIndex, index: i}
}

// NoSubtitle requests that subtitles be explicitly disabled.
func NoSubtitle() SubtitleRequest {
	return SubtitleRequest{kind: requestNone}
}

// UnsetSubtitle expresses no subtitle preference. It resolves the same as
// NoSubtitle but keeps the "caller never asked" case distinct at the API.
func UnsetSubtitle() SubtitleRequest {
	return SubtitleRequest{}
}

// fallbackSubtitleFormat is used for the disabled/unavailable selections,
// where the format is meaningless but the player surface still expects one.
const fallbackSubtitleFormat = "vtt"

// SelectSubtitle resolves a subtitle request against the streams of a media
// source. It is pure: identical inputs always produce identical selections.
//
// When no subtitle streams exist the result is SubtitleUnavailable, which is
// distinct from an explicit NoSubtitle request (SubtitleDisabled). A
// concrete index that matches no stream still yields an enabled selection
// with empty URL and format; callers must treat that as "no subtitle
// currently renderable".
func SelectSubtitle(req SubtitleRequest, streams []MediaStream) SubtitleSelection {
	available := make([]MediaStream, 0, len(streams))
	for _, s := range streams {
		if s.Type == StreamSubtitle {
			available = append(available, s)
		}
	}

	if len(available) == 0 {
		return SubtitleSelection{
			Mode:      SubtitleUnavailable,
			Format:    fallbackSubtitleFormat,
			AllTracks: available,
		}
	}

	if req.kind != requestIndex {
		return SubtitleSelection{
			Mode:      SubtitleDisabled,
			Format:    fallbackSubtitleFormat,
			AllTracks: available,
		}
	}

	sel := SubtitleSelection{
		Mode:      SubtitleSelected,
		Enabled:   true,
		Track:     req.index,
		AllTracks: available,
	}
	for _, s := range available {
		if s.Index == req.index {
			sel.Format = s.Codec
			sel.URL = s.DeliveryURL
			break
		}
	}
	return sel
}
