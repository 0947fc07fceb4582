package playback

import (
	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/jellyfin"
)

// Defaults applied when the server omits a field. Every fallback lives
// here rather than scattered through the resolver.
const (
	defaultContainer     = "mkv"
	defaultStreamIndex   = 0
	defaultSeasonNumber  = 0
	defaultEpisodeNumber = 0
)

// MapItem converts a server catalog item into the domain representation.
func MapItem(b jellyfin.BaseItem) core.Item {
	item := core.Item{
		ID:            b.ID,
		Kind:          core.MediaKind(b.Type),
		Name:          b.Name,
		SeriesID:      b.SeriesID,
		SeriesName:    b.SeriesName,
		SeasonNumber:  defaultSeasonNumber,
		EpisodeNumber: defaultEpisodeNumber,
		RuntimeTicks:  b.RunTimeTicks,
	}
	if b.ParentIndexNumber != nil {
		item.SeasonNumber = *b.ParentIndexNumber
	}
	if b.IndexNumber != nil {
		item.EpisodeNumber = *b.IndexNumber
	}
	if b.UserData != nil {
		item.PositionTicks = b.UserData.PlaybackPositionTicks
	}
	for _, src := range b.MediaSources {
		item.Sources = append(item.Sources, MapSource(src))
	}
	return item
}

// MapSource converts a server media source into the domain representation,
// applying the documented defaults for absent fields.
func MapSource(s jellyfin.MediaSourceInfo) core.MediaSource {
	src := core.MediaSource{
		ID:                    s.ID,
		Container:             s.Container,
		SupportsDirectStream:  s.SupportsDirectStream,
		SupportsTranscoding:   s.SupportsTranscoding,
		TranscodingPath:       s.TranscodingURL,
		ETag:                  s.ETag,
		DefaultAudioStream:    defaultStreamIndex,
		DefaultSubtitleStream: defaultStreamIndex,
	}
	if src.Container == "" {
		src.Container = defaultContainer
	}
	if s.DefaultAudioStreamIndex != nil {
		src.DefaultAudioStream = *s.DefaultAudioStreamIndex
	}
	if s.DefaultSubtitleStreamIndex != nil {
		src.DefaultSubtitleStream = *s.DefaultSubtitleStreamIndex
		src.HasDefaultSubtitle = true
	}
	for _, ms := range s.MediaStreams {
		src.Streams = append(src.Streams, core.MediaStream{
			Index:        ms.Index,
			Type:         core.StreamType(ms.Type),
			Codec:        ms.Codec,
			Language:     ms.Language,
			DisplayTitle: ms.DisplayTitle,
			DeliveryURL:  ms.DeliveryURL,
			IsDefault:    ms.IsDefault,
			IsExternal:   ms.IsExternal,
		})
	}
	return src
}

// MapIntro converts intro-skip segment metadata into the domain
// representation. Returns nil when neither segment is present.
func MapIntro(seg *jellyfin.IntroSegments) *core.IntroInfo {
	if seg == nil || (seg.Introduction == nil && seg.Credits == nil) {
		return nil
	}
	return &core.IntroInfo{
		Introduction: mapSegment(seg.Introduction),
		Credits:      mapSegment(seg.Credits),
	}
}

func mapSegment(s *jellyfin.Segment) *core.SkipSegment {
	if s == nil {
		return nil
	}
	return &core.SkipSegment{
		Start:  s.Start,
		End:    s.End,
		ShowAt: s.ShowAt,
		HideAt: s.HideAt,
		Valid:  s.Valid,
	}
}
