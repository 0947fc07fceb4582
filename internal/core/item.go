package core

// MediaKind classifies a playable catalog item.
type MediaKind string

const (
	KindAudio   MediaKind = "Audio"
	KindMovie   MediaKind = "Movie"
	KindEpisode MediaKind = "Episode"
	KindVideo   MediaKind = "Video"
)

// StreamType identifies an elementary stream within a media source.
type StreamType string

const (
	StreamVideo    StreamType = "Video"
	StreamAudio    StreamType = "Audio"
	StreamSubtitle StreamType = "Subtitle"
)

// Item represents a playable catalog entry (movie, episode, track).
type Item struct {
	ID            string        `json:"id"`
	Kind          MediaKind     `json:"kind"`
	Name          string        `json:"name"`
	SeriesID      string        `json:"series_id,omitempty"`
	SeriesName    string        `json:"series_name,omitempty"`
	SeasonNumber  int           `json:"season_number,omitempty"`
	EpisodeNumber int           `json:"episode_number,omitempty"`
	Sources       []MediaSource `json:"sources,omitempty"`
	PositionTicks int64         `json:"position_ticks,omitempty"`
	RuntimeTicks  int64         `json:"runtime_ticks,omitempty"`
}

// IsAudio returns true for audio items, which play without stream negotiation.
func (i *Item) IsAudio() bool {
	return i != nil && i.Kind == KindAudio
}

// PrimarySource returns the item's first media source, or nil if it has none.
func (i *Item) PrimarySource() *MediaSource {
	if i == nil || len(i.Sources) == 0 {
		return nil
	}
	return &i.Sources[0]
}

// MediaSource is one concrete encoded representation of an Item.
type MediaSource struct {
	ID                    string        `json:"id"`
	Container             string        `json:"container"`
	SupportsDirectStream  bool          `json:"supports_direct_stream"`
	SupportsTranscoding   bool          `json:"supports_transcoding"`
	TranscodingPath       string        `json:"transcoding_path,omitempty"`
	ETag                  string        `json:"etag,omitempty"`
	PlaySessionID         string        `json:"play_session_id,omitempty"`
	Streams               []MediaStream `json:"streams,omitempty"`
	DefaultAudioStream    int           `json:"default_audio_stream"`
	DefaultSubtitleStream int           `json:"default_subtitle_stream"`
	HasDefaultSubtitle    bool          `json:"has_default_subtitle"`
}

// FirstStreamOfType returns the first stream of the given type, or nil.
func (m *MediaSource) FirstStreamOfType(t StreamType) *MediaStream {
	if m == nil {
		return nil
	}
	for i := range m.Streams {
		if m.Streams[i].Type == t {
			return &m.Streams[i]
		}
	}
	return nil
}

// MediaStream is one elementary stream (video/audio/subtitle) within a
// media source.
type MediaStream struct {
	Index        int        `json:"index"`
	Type         StreamType `json:"type"`
	Codec        string     `json:"codec,omitempty"`
	Language     string     `json:"language,omitempty"`
	DisplayTitle string     `json:"display_title,omitempty"`
	DeliveryURL  string     `json:"delivery_url,omitempty"`
	IsDefault    bool       `json:"is_default,omitempty"`
	IsExternal   bool       `json:"is_external,omitempty"`
}
