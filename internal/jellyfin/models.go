package jellyfin

// BaseItem represents a catalog item as returned by the server.
type BaseItem struct {
	ID                string            `json:"Id"`
	Name              string            `json:"Name"`
	Type              string            `json:"Type"`
	SeriesID          string            `json:"SeriesId,omitempty"`
	SeriesName        string            `json:"SeriesName,omitempty"`
	ParentIndexNumber *int              `json:"ParentIndexNumber,omitempty"`
	IndexNumber       *int              `json:"IndexNumber,omitempty"`
	RunTimeTicks      int64             `json:"RunTimeTicks,omitempty"`
	UserData          *UserData         `json:"UserData,omitempty"`
	MediaSources      []MediaSourceInfo `json:"MediaSources,omitempty"`
}

// UserData carries per-user playback progress for an item.
type UserData struct {
	PlaybackPositionTicks int64 `json:"PlaybackPositionTicks"`
	PlayCount             int   `json:"PlayCount"`
	Played                bool  `json:"Played"`
}

// MediaSourceInfo is one concrete encoded representation of an item.
type MediaSourceInfo struct {
	ID                         string        `json:"Id"`
	Container                  string        `json:"Container,omitempty"`
	SupportsDirectStream       bool          `json:"SupportsDirectStream"`
	SupportsTranscoding        bool          `json:"SupportsTranscoding"`
	TranscodingURL             string        `json:"TranscodingUrl,omitempty"`
	ETag                       string        `json:"ETag,omitempty"`
	MediaStreams               []MediaStream `json:"MediaStreams,omitempty"`
	DefaultAudioStreamIndex    *int          `json:"DefaultAudioStreamIndex,omitempty"`
	DefaultSubtitleStreamIndex *int          `json:"DefaultSubtitleStreamIndex,omitempty"`
}

// MediaStream is one elementary stream within a media source.
type MediaStream struct {
	Index        int    `json:"Index"`
	Type         string `json:"Type"`
	Codec        string `json:"Codec,omitempty"`
	Language     string `json:"Language,omitempty"`
	DisplayTitle string `json:"DisplayTitle,omitempty"`
	DeliveryURL  string `json:"DeliveryUrl,omitempty"`
	IsDefault    bool   `json:"IsDefault"`
	IsExternal   bool   `json:"IsExternal"`
}

// PlaybackInfoResponse is the result of a playback-info negotiation.
type PlaybackInfoResponse struct {
	MediaSources  []MediaSourceInfo `json:"MediaSources"`
	PlaySessionID string            `json:"PlaySessionId"`
	ErrorCode     string            `json:"ErrorCode,omitempty"`
}

// PlaybackInfoBody is the POST body of a playback-info request.
type PlaybackInfoBody struct {
	DeviceProfile *DeviceProfile `json:"DeviceProfile,omitempty"`
}

// PlaybackStopInfo reports the end of a play session to the server.
type PlaybackStopInfo struct {
	ItemID        string `json:"ItemId"`
	MediaSourceID string `json:"MediaSourceId"`
	PlaySessionID string `json:"PlaySessionId"`
	PositionTicks int64  `json:"PositionTicks,omitempty"`
	Failed        bool   `json:"Failed"`
}

// ItemsResult is a paged list of items.
type ItemsResult struct {
	Items            []BaseItem `json:"Items"`
	TotalRecordCount int        `json:"TotalRecordCount"`
}

// IntroSegments holds the skippable segments the intro-skipper plugin
// exposes for an episode.
type IntroSegments struct {
	Introduction *Segment `json:"Introduction,omitempty"`
	Credits      *Segment `json:"Credits,omitempty"`
}

// Segment is one skippable region, in seconds from the start of the item.
type Segment struct {
	Start  float64 `json:"IntroStart"`
	End    float64 `json:"IntroEnd"`
	ShowAt float64 `json:"ShowSkipPromptAt"`
	HideAt float64 `json:"HideSkipPromptAt"`
	Valid  bool    `json:"Valid"`
}

// DeviceProfile declares this client's playback capabilities to the server,
// which decides direct-stream vs transcode from it.
type DeviceProfile struct {
	Name                string               `json:"Name"`
	MaxStreamingBitrate int64                `json:"MaxStreamingBitrate"`
	DirectPlayProfiles  []DirectPlayProfile  `json:"DirectPlayProfiles"`
	TranscodingProfiles []TranscodingProfile `json:"TranscodingProfiles"`
	SubtitleProfiles    []SubtitleProfile    `json:"SubtitleProfiles"`
}

// DirectPlayProfile declares a container/codec combination the client can
// play natively.
type DirectPlayProfile struct {
	Container  string `json:"Container"`
	Type       string `json:"Type"`
	VideoCodec string `json:"VideoCodec,omitempty"`
	AudioCodec string `json:"AudioCodec,omitempty"`
}

// TranscodingProfile declares a format the server may transcode to.
type TranscodingProfile struct {
	Container  string `json:"Container"`
	Type       string `json:"Type"`
	Protocol   string `json:"Protocol,omitempty"`
	VideoCodec string `json:"VideoCodec,omitempty"`
	AudioCodec string `json:"AudioCodec,omitempty"`
}

// SubtitleProfile declares a subtitle format and its delivery method.
type SubtitleProfile struct {
	Format string `json:"Format"`
	Method string `json:"Method"`
}

// DefaultDeviceProfile returns the capability profile reel declares during
// playback-info negotiation.
func DefaultDeviceProfile() *DeviceProfile {
	return &DeviceProfile{
		Name:                clientName,
		MaxStreamingBitrate: 120_000_000,
		DirectPlayProfiles: []DirectPlayProfile{
			{Container: "mp4,m4v,mkv,webm", Type: "Video", VideoCodec: "h264,hevc,vp9,av1", AudioCodec: "aac,mp3,opus,flac,vorbis"},
			{Container: "mp3,flac,ogg,m4a,wav", Type: "Audio"},
		},
		TranscodingProfiles: []TranscodingProfile{
			{Container: "ts", Type: "Video", Protocol: "hls", VideoCodec: "h264", AudioCodec: "aac"},
			{Container: "mp3", Type: "Audio"},
		},
		SubtitleProfiles: []SubtitleProfile{
			{Format: "vtt", Method: "External"},
			{Format: "subrip", Method: "External"},
			{Format: "ass", Method: "External"},
		},
	}
}
