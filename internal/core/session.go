package core

// PlaybackSession is the full committed state for a video playback attempt.
// It is replaced wholesale each time the orchestrator commits a new item,
// never mutated field-by-field from outside.
type PlaybackSession struct {
	ItemName      string            `json:"item_name"`
	EpisodeTitle  string            `json:"episode_title,omitempty"`
	VideoTrack    int               `json:"video_track"`
	AudioTrack    int               `json:"audio_track"`
	Container     string            `json:"container"`
	MediaSourceID string            `json:"media_source_id"`
	Subtitle      SubtitleSelection `json:"subtitle"`
	StreamURL     string            `json:"stream_url"`
	UserID        string            `json:"user_id"`
	StartTicks    int64             `json:"start_ticks"`
	DurationTicks int64             `json:"duration_ticks"`
	Item          Item              `json:"item"`
	PlaySessionID string            `json:"play_session_id,omitempty"`
	Intro         *IntroInfo        `json:"intro,omitempty"`
}

// AudioSession is the independent "now playing an audio track" projection.
// Audio playback skips stream negotiation and subtitle resolution, so it
// carries only a direct URL and the item.
type AudioSession struct {
	URL  string `json:"url"`
	Item Item   `json:"item"`
}

// IntroInfo holds the skippable segments of an episode, when the server
// exposes them.
type IntroInfo struct {
	Introduction *SkipSegment `json:"introduction,omitempty"`
	Credits      *SkipSegment `json:"credits,omitempty"`
}

// SkipSegment is one skippable region, in seconds from the start.
type SkipSegment struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	ShowAt float64 `json:"show_at"`
	HideAt float64 `json:"hide_at"`
	Valid  bool    `json:"valid"`
}
