package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxfeld/reel/internal/jellyfin"
)

// backgroundTimeout bounds the fire-and-forget calls (stop reports, intro
// fetches) so they cannot linger once the advance itself has finished.
const backgroundTimeout = 10 * time.Second

// outgoing is the state of the session being replaced, captured before any
// new session is committed.
type outgoing struct {
	itemID        string
	sourceID      string
	playSessionID string
	positionTicks int64
}

// reporter sends best-effort stop notifications for replaced sessions.
type reporter struct {
	api *jellyfin.Client
	log zerolog.Logger
	wg  *sync.WaitGroup
}

// reportStopped notifies the server that the outgoing session ended. It
// returns immediately; the request runs in the background and its failure
// is logged, never surfaced. Sessions that never reported a play session
// id have nothing to stop.
func (r *reporter) reportStopped(prev outgoing) {
	if prev.playSessionID == "" {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		err := r.api.ReportPlaybackStopped(ctx, jellyfin.PlaybackStopInfo{
			ItemID:        prev.itemID,
			MediaSourceID: prev.sourceID,
			PlaySessionID: prev.playSessionID,
			PositionTicks: prev.positionTicks,
			Failed:        false,
		})
		if err != nil {
			r.log.Warn().Err(err).Str("play_session_id", prev.playSessionID).
				Msg("stop report failed")
		}
	}()
}
