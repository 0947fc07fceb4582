package playback

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/jellyfin"
)

// resolver turns a video item into a committed-ready PlaybackSession by
// negotiating delivery with the server.
type resolver struct {
	api *jellyfin.Client
	log zerolog.Logger

	// subtitlesOff suppresses the source's declared default subtitle.
	// Tracks stay selectable afterwards; only the initial state changes.
	subtitlesOff bool
}

// resolveVideo negotiates playback for a video item and assembles the
// session. The intro field is left unset; the orchestrator fills it in
// after commit.
//
// The direct-stream URL is always composed first; a source that supports
// transcoding and carries a transcoding path replaces it entirely.
func (r *resolver) resolveVideo(ctx context.Context, item core.Item) (*core.PlaybackSession, error) {
	requested := item.PrimarySource()
	if requested == nil {
		return nil, &errors.ResolutionError{ItemID: item.ID, Reason: "item has no media sources"}
	}

	resp, err := r.api.PlaybackInfo(ctx, jellyfin.PlaybackInfoParams{
		ItemID:              item.ID,
		MediaSourceID:       requested.ID,
		AudioStreamIndex:    requested.DefaultAudioStream,
		SubtitleStreamIndex: requested.DefaultSubtitleStream,
		StartTimeTicks:      item.PositionTicks,
	})
	if err != nil {
		return nil, &errors.ResolutionError{ItemID: item.ID, Reason: "playback negotiation failed", Err: err}
	}
	if len(resp.MediaSources) == 0 {
		return nil, &errors.ResolutionError{ItemID: item.ID, Reason: "negotiation returned no media sources"}
	}

	source := MapSource(resp.MediaSources[0])

	videoStream := source.FirstStreamOfType(core.StreamVideo)
	if videoStream == nil {
		return nil, &errors.ResolutionError{ItemID: item.ID, Reason: "media source has no video stream"}
	}

	// Series episodes display under the series name with a composed
	// episode title; everything else keeps its own name.
	name := item.Name
	episodeTitle := ""
	if item.SeriesID != "" {
		name = item.SeriesName
		episodeTitle = fmt.Sprintf("S%d:E%d %s", item.SeasonNumber, item.EpisodeNumber, item.Name)
	}

	subtitleReq := core.NoSubtitle()
	if !r.subtitlesOff && source.HasDefaultSubtitle {
		subtitleReq = core.SubtitleIndex(source.DefaultSubtitleStream)
	}
	subtitle := core.SelectSubtitle(subtitleReq, source.Streams)

	url := r.api.VideoStreamURL(source.ID, source.Container, source.ETag)
	if source.SupportsTranscoding && source.TranscodingPath != "" {
		url = r.api.TranscodeURL(source.TranscodingPath)
		r.log.Debug().Str("item_id", item.ID).Str("path", source.TranscodingPath).
			Msg("server chose transcoding over direct stream")
	}

	return &core.PlaybackSession{
		ItemName:      name,
		EpisodeTitle:  episodeTitle,
		VideoTrack:    videoStream.Index,
		AudioTrack:    source.DefaultAudioStream,
		Container:     source.Container,
		MediaSourceID: source.ID,
		Subtitle:      subtitle,
		StreamURL:     url,
		UserID:        r.api.UserID(),
		StartTicks:    item.PositionTicks,
		DurationTicks: item.RuntimeTicks,
		Item:          item,
		PlaySessionID: resp.PlaySessionID,
	}, nil
}
