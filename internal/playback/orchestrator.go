// Package playback holds the session orchestrator: the logic that turns a
// queue position into a committed playback session, negotiating delivery
// with the server and reporting session transitions back to it.
package playback

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/jellyfin"
)

// Target identifies the queue position an advance should move to.
type Target struct {
	kind  targetKind
	index int
}

type targetKind int

const (
	targetNext targetKind = iota
	targetPrevious
	targetAbsolute
)

// Next targets the item after the current cursor.
func Next() Target { return Target{kind: targetNext} }

// Previous targets the item before the current cursor.
func Previous() Target { return Target{kind: targetPrevious} }

// Absolute targets a specific queue index.
func Absolute(i int) Target { return Target{kind: targetAbsolute, index: i} }

// resolve computes the concrete index for the target. No bounds clamping:
// an out-of-range result surfaces as queue exhaustion at lookup.
func (t Target) resolve(current int) int {
	switch t.kind {
	case targetNext:
		return current + 1
	case targetPrevious:
		return current - 1
	default:
		return t.index
	}
}

// Orchestrator coordinates queue advancement: it resolves the target item,
// negotiates its delivery, reports the outgoing session stopped, and
// commits the new session and cursor together.
type Orchestrator struct {
	api      *jellyfin.Client
	store    *Store
	log      zerolog.Logger
	resolver *resolver
	reporter *reporter

	advancing atomic.Bool
	wg        sync.WaitGroup
}

// New builds an orchestrator around a server client and a state store.
func New(api *jellyfin.Client, store *Store, log zerolog.Logger) *Orchestrator {
	o := &Orchestrator{
		api:   api,
		store: store,
		log:   log,
	}
	o.resolver = &resolver{api: api, log: log}
	o.reporter = &reporter{api: api, log: log, wg: &o.wg}
	return o
}

// Store exposes the state store for read access and persistence.
func (o *Orchestrator) Store() *Store {
	return o.store
}

// SetSubtitlePreference applies the configured subtitle preference:
// "off" starts new sessions with subtitles disabled even when the source
// declares a default track, anything else keeps the source's default.
func (o *Orchestrator) SetSubtitlePreference(pref string) {
	o.resolver.subtitlesOff = pref == "off"
}

// Advance moves playback to the target queue position. On any failure the
// queue cursor and the committed session are left exactly as they were;
// the session and cursor are only ever updated together.
//
// Overlapping advances are rejected rather than serialized: a second
// advance racing the first would commit whichever negotiation finished
// last, not the most recent intent.
func (o *Orchestrator) Advance(ctx context.Context, target Target) error {
	if !o.advancing.CompareAndSwap(false, true) {
		return errors.ErrAdvanceInProgress
	}
	defer o.advancing.Store(false)

	snap := o.store.Snapshot()
	index := target.resolve(snap.Queue.CurrentIndex)

	// Captured before commit; the stop report must describe the session
	// being replaced, never the one about to start.
	var prev outgoing
	if snap.Session != nil {
		prev = outgoing{
			itemID:        snap.Session.Item.ID,
			sourceID:      snap.Session.MediaSourceID,
			playSessionID: snap.Session.PlaySessionID,
			positionTicks: snap.Session.StartTicks,
		}
	}

	item := snap.Queue.At(index)
	if item == nil || item.ID == "" {
		return fmt.Errorf("no item at index %d: %w", index, errors.ErrQueueExhausted)
	}

	if item.IsAudio() {
		o.store.commitAudio(core.AudioSession{
			URL:  o.api.AudioStreamURL(item.ID),
			Item: *item,
		}, index)
		o.log.Info().Str("item_id", item.ID).Str("name", item.Name).Msg("playing audio")
		return nil
	}

	session, err := o.resolver.resolveVideo(ctx, *item)
	if err != nil {
		return err
	}

	o.reporter.reportStopped(prev)
	gen := o.store.commitVideo(*session, index)
	o.log.Info().Str("item_id", item.ID).Str("name", session.ItemName).
		Str("play_session_id", session.PlaySessionID).Msg("committed playback session")

	o.fetchIntro(item.ID, gen)
	return nil
}

// fetchIntro loads intro-skip metadata in the background. The endpoint is
// plugin-provided and often absent; failure degrades to no intro info. A
// result that arrives after the session has been replaced is discarded.
func (o *Orchestrator) fetchIntro(itemID string, gen int64) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()

		segments, err := o.api.IntroSegments(ctx, itemID)
		if err != nil {
			o.log.Debug().Err(err).Str("item_id", itemID).Msg("intro metadata unavailable")
			return
		}
		if intro := MapIntro(segments); intro != nil {
			if !o.store.AttachIntro(gen, intro) {
				o.log.Debug().Str("item_id", itemID).Msg("discarding intro metadata for replaced session")
			}
		}
	}()
}

// Play starts a standalone playback sequence: a one-element queue holding
// the item, committed immediately.
func (o *Orchestrator) Play(ctx context.Context, itemID string) error {
	base, err := o.api.Item(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to fetch item: %w", err)
	}

	o.store.ResetQueue(core.NewQueue([]core.Item{MapItem(*base)}, 0))
	return o.Advance(ctx, Absolute(0))
}

// PlayChildren starts a playback sequence over the playable children of a
// container item (season, album, playlist), beginning at start.
func (o *Orchestrator) PlayChildren(ctx context.Context, parentID string, start int) error {
	children, err := o.api.ChildItems(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to fetch children: %w", err)
	}
	if len(children) == 0 {
		return fmt.Errorf("no playable items under %s: %w", parentID, errors.ErrQueueExhausted)
	}

	items := make([]core.Item, 0, len(children))
	for _, child := range children {
		items = append(items, MapItem(child))
	}

	o.store.ResetQueue(core.NewQueue(items, start))
	return o.Advance(ctx, Absolute(start))
}

// ChangeSubtitleTrack recomputes the active subtitle selection against the
// already-loaded track set. No server round trip.
func (o *Orchestrator) ChangeSubtitleTrack(req core.SubtitleRequest) error {
	return o.store.UpdateSubtitle(func(cur core.SubtitleSelection) core.SubtitleSelection {
		return core.SelectSubtitle(req, cur.AllTracks)
	})
}

// ToggleSubtitle flips the enabled flag of the active selection. A no-op
// when the source has no subtitle streams at all.
func (o *Orchestrator) ToggleSubtitle() error {
	return o.store.UpdateSubtitle(func(cur core.SubtitleSelection) core.SubtitleSelection {
		cur.Toggle()
		return cur
	})
}

// Stop reports the active session stopped and clears both projections.
// Unlike the advance path, the report is synchronous: the caller asked to
// end playback and wants the server to know.
func (o *Orchestrator) Stop(ctx context.Context) error {
	snap := o.store.Snapshot()
	if snap.Session == nil && snap.Audio == nil {
		return errors.ErrNoStoredSession
	}

	if snap.Session != nil && snap.Session.PlaySessionID != "" {
		err := o.api.ReportPlaybackStopped(ctx, jellyfin.PlaybackStopInfo{
			ItemID:        snap.Session.Item.ID,
			MediaSourceID: snap.Session.MediaSourceID,
			PlaySessionID: snap.Session.PlaySessionID,
			PositionTicks: snap.Session.StartTicks,
			Failed:        false,
		})
		if err != nil {
			o.log.Warn().Err(err).Msg("stop report failed")
		}
	}

	o.store.Clear()
	return nil
}

// Wait blocks until all background reports and fetches have finished.
// One-shot commands call this before exiting.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
