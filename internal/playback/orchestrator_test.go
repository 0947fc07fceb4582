package playback

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
	"github.com/voxfeld/reel/internal/jellyfin"
)

// fakeServer records the requests the orchestrator makes and serves
// canned negotiation responses.
type fakeServer struct {
	mu sync.Mutex

	playbackInfo  jellyfin.PlaybackInfoResponse
	introSegments *jellyfin.IntroSegments
	introStatus   int

	negotiations int
	stopReports  []jellyfin.PlaybackStopInfo
	introCalls   int
}

func (f *fakeServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case strings.Contains(r.URL.Path, "/PlaybackInfo"):
			f.negotiations++
			json.NewEncoder(w).Encode(f.playbackInfo)
		case strings.HasSuffix(r.URL.Path, "/Sessions/Playing/Stopped"):
			var info jellyfin.PlaybackStopInfo
			json.NewDecoder(r.Body).Decode(&info)
			f.stopReports = append(f.stopReports, info)
			w.WriteHeader(http.StatusNoContent)
		case strings.Contains(r.URL.Path, "/IntroSkipperSegments"):
			f.introCalls++
			if f.introStatus != 0 {
				w.WriteHeader(f.introStatus)
				return
			}
			json.NewEncoder(w).Encode(f.introSegments)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (f *fakeServer) negotiationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.negotiations
}

func (f *fakeServer) reports() []jellyfin.PlaybackStopInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]jellyfin.PlaybackStopInfo(nil), f.stopReports...)
}

func newTestOrchestrator(t *testing.T, fake *fakeServer) (*Orchestrator, *Store, string) {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := jellyfin.New(srv.URL, "test-token", "user-1", "device-1")
	store := NewStore()
	return New(client, store, zerolog.Nop()), store, srv.URL
}

func videoStream(index int) jellyfin.MediaStream {
	return jellyfin.MediaStream{Index: index, Type: "Video", Codec: "h264"}
}

func subtitleStream(index int, codec, url string) jellyfin.MediaStream {
	return jellyfin.MediaStream{Index: index, Type: "Subtitle", Codec: codec, DeliveryURL: url}
}

func negotiatedSource(id string, streams ...jellyfin.MediaStream) jellyfin.MediaSourceInfo {
	return jellyfin.MediaSourceInfo{
		ID:                   id,
		Container:            "mkv",
		SupportsDirectStream: true,
		ETag:                 "tag-1",
		MediaStreams:         streams,
	}
}

func movieItem(id, name string) core.Item {
	return core.Item{
		ID:      id,
		Kind:    core.KindMovie,
		Name:    name,
		Sources: []core.MediaSource{{ID: "src-" + id, Container: "mkv"}},
	}
}

func TestAdvanceQueueExhaustedLeavesStateUnchanged(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	before := store.Snapshot()

	err := o.Advance(context.Background(), Next())
	if !stderrors.Is(err, errors.ErrQueueExhausted) {
		t.Fatalf("Advance() error = %v, want ErrQueueExhausted", err)
	}

	after := store.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed on failed advance:\nbefore %+v\nafter  %+v", before, after)
	}
	if fake.negotiationCount() != 0 {
		t.Errorf("negotiations = %d, want 0 on exhausted queue", fake.negotiationCount())
	}
}

func TestAdvancePreviousBeforeStartExhausts(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))

	if err := o.Advance(context.Background(), Previous()); !stderrors.Is(err, errors.ErrQueueExhausted) {
		t.Fatalf("Advance(Previous) error = %v, want ErrQueueExhausted", err)
	}
}

func TestAdvanceCommitsSeriesEpisodeTitle(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-b", videoStream(0))},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	episode := core.Item{
		ID:            "b",
		Kind:          core.KindEpisode,
		Name:          "The Heist",
		SeriesID:      "series-1",
		SeriesName:    "Capers",
		SeasonNumber:  2,
		EpisodeNumber: 5,
		Sources:       []core.MediaSource{{ID: "src-b", Container: "mkv"}},
	}
	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A"), episode}, 0))

	if err := o.Advance(context.Background(), Next()); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	snap := store.Snapshot()
	if snap.Session == nil {
		t.Fatal("no session committed")
	}
	if snap.Session.ItemName != "Capers" {
		t.Errorf("ItemName = %q, want series name", snap.Session.ItemName)
	}
	if snap.Session.EpisodeTitle != "S2:E5 The Heist" {
		t.Errorf("EpisodeTitle = %q, want %q", snap.Session.EpisodeTitle, "S2:E5 The Heist")
	}
	if snap.Queue.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", snap.Queue.CurrentIndex)
	}
	if snap.Session.PlaySessionID != "ps-1" {
		t.Errorf("PlaySessionID = %q, want %q", snap.Session.PlaySessionID, "ps-1")
	}
}

func TestAdvanceTranscodeOverridesDirectURL(t *testing.T) {
	src := negotiatedSource("src-a", videoStream(0))
	src.SupportsTranscoding = true
	src.TranscodingURL = "/videos/123/master.m3u8"
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{src},
			PlaySessionID: "ps-1",
		},
	}
	o, store, baseURL := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	snap := store.Snapshot()
	want := baseURL + "/videos/123/master.m3u8"
	if snap.Session.StreamURL != want {
		t.Errorf("StreamURL = %q, want %q", snap.Session.StreamURL, want)
	}
}

func TestAdvanceDirectStreamURL(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-a", videoStream(0))},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	snap := store.Snapshot()
	url := snap.Session.StreamURL
	if !strings.Contains(url, "/Videos/src-a/stream.mkv") {
		t.Errorf("StreamURL = %q, want direct stream path", url)
	}
	for _, param := range []string{"Static=true", "tag=tag-1", "mediaSourceId=src-a", "deviceId=device-1", "api_key=test-token"} {
		if !strings.Contains(url, param) {
			t.Errorf("StreamURL = %q, missing %q", url, param)
		}
	}
}

func TestAdvanceAudioSkipsNegotiation(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	track := core.Item{ID: "t1", Kind: core.KindAudio, Name: "Track One"}
	store.ResetQueue(core.NewQueue([]core.Item{track}, 0))

	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	if fake.negotiationCount() != 0 {
		t.Errorf("negotiations = %d, want 0 for audio", fake.negotiationCount())
	}
	snap := store.Snapshot()
	if snap.Session != nil {
		t.Error("video session committed for audio item")
	}
	if snap.Audio == nil {
		t.Fatal("audio projection not committed")
	}
	if !strings.Contains(snap.Audio.URL, "/Audio/t1/universal") {
		t.Errorf("audio URL = %q, want universal endpoint", snap.Audio.URL)
	}
	for _, param := range []string{"userId=user-1", "deviceId=device-1"} {
		if !strings.Contains(snap.Audio.URL, param) {
			t.Errorf("audio URL = %q, missing %q", snap.Audio.URL, param)
		}
	}
}

func TestAdvanceReportsOutgoingSession(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-b", videoStream(0))},
			PlaySessionID: "ps-new",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	prev := core.PlaybackSession{
		Item:          core.Item{ID: "a"},
		MediaSourceID: "src-a",
		PlaySessionID: "ps-old",
	}
	store.Restore(Snapshot{
		Session: &prev,
		Queue:   core.NewQueue([]core.Item{movieItem("a", "A"), movieItem("b", "B")}, 0),
	})

	if err := o.Advance(context.Background(), Next()); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	reports := fake.reports()
	if len(reports) != 1 {
		t.Fatalf("stop reports = %d, want 1", len(reports))
	}
	got := reports[0]
	if got.ItemID != "a" || got.MediaSourceID != "src-a" || got.PlaySessionID != "ps-old" {
		t.Errorf("stop report = %+v, want outgoing session state", got)
	}
	if got.Failed {
		t.Error("stop report Failed = true, want false")
	}
}

func TestAdvanceWithoutPriorSessionSkipsReport(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-a", videoStream(0))},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	if n := len(fake.reports()); n != 0 {
		t.Errorf("stop reports = %d, want 0 when nothing was playing", n)
	}
}

func TestAdvanceIntroFailureStillCommits(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-e", videoStream(0))},
			PlaySessionID: "ps-1",
		},
		introStatus: http.StatusNotFound,
	}
	o, store, _ := newTestOrchestrator(t, fake)

	episode := core.Item{
		ID:      "e",
		Kind:    core.KindEpisode,
		Name:    "Pilot",
		Sources: []core.MediaSource{{ID: "src-e", Container: "mkv"}},
	}
	store.ResetQueue(core.NewQueue([]core.Item{episode}, 0))

	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	snap := store.Snapshot()
	if snap.Session == nil {
		t.Fatal("no session committed")
	}
	if snap.Session.Intro != nil {
		t.Error("Intro set despite fetch failure")
	}
	f := fake
	f.mu.Lock()
	calls := f.introCalls
	f.mu.Unlock()
	if calls == 0 {
		t.Error("intro endpoint never called for episode")
	}
}

func TestAdvanceAttachesIntroMetadata(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-e", videoStream(0))},
			PlaySessionID: "ps-1",
		},
		introSegments: &jellyfin.IntroSegments{
			Introduction: &jellyfin.Segment{Start: 10, End: 95, ShowAt: 10, HideAt: 20, Valid: true},
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	episode := core.Item{
		ID:      "e",
		Kind:    core.KindEpisode,
		Name:    "Pilot",
		Sources: []core.MediaSource{{ID: "src-e", Container: "mkv"}},
	}
	store.ResetQueue(core.NewQueue([]core.Item{episode}, 0))

	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	snap := store.Snapshot()
	if snap.Session.Intro == nil || snap.Session.Intro.Introduction == nil {
		t.Fatal("intro metadata not attached")
	}
	if snap.Session.Intro.Introduction.End != 95 {
		t.Errorf("Introduction.End = %v, want 95", snap.Session.Intro.Introduction.End)
	}
}

func TestAdvanceRejectedWhileInProgress(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)
	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))

	o.advancing.Store(true)
	defer o.advancing.Store(false)

	if err := o.Advance(context.Background(), Absolute(0)); !stderrors.Is(err, errors.ErrAdvanceInProgress) {
		t.Errorf("Advance() error = %v, want ErrAdvanceInProgress", err)
	}
}

func TestAdvanceResolutionFailureNoPartialCommit(t *testing.T) {
	// Negotiation succeeds but the source has no video stream.
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-a", subtitleStream(1, "subrip", ""))},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A"), movieItem("b", "B")}, 0))
	before := store.Snapshot()

	err := o.Advance(context.Background(), Next())
	var resErr *errors.ResolutionError
	if !stderrors.As(err, &resErr) {
		t.Fatalf("Advance() error = %v, want ResolutionError", err)
	}

	after := store.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("state changed on failed resolution")
	}
	if n := len(fake.reports()); n != 0 {
		t.Errorf("stop reports = %d, want 0 on failed advance", n)
	}
}

func TestAdvanceNoMediaSourcesFails(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{PlaySessionID: "ps-1"},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))

	err := o.Advance(context.Background(), Absolute(0))
	var resErr *errors.ResolutionError
	if !stderrors.As(err, &resErr) {
		t.Fatalf("Advance() error = %v, want ResolutionError", err)
	}
}

func TestAdvanceItemWithoutSourcesFails(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	bare := core.Item{ID: "a", Kind: core.KindMovie, Name: "A"}
	store.ResetQueue(core.NewQueue([]core.Item{bare}, 0))

	err := o.Advance(context.Background(), Absolute(0))
	var resErr *errors.ResolutionError
	if !stderrors.As(err, &resErr) {
		t.Fatalf("Advance() error = %v, want ResolutionError", err)
	}
	if fake.negotiationCount() != 0 {
		t.Error("negotiation attempted for item with no sources")
	}
}

func TestAdvanceResolvesDefaultSubtitle(t *testing.T) {
	idx := 2
	src := negotiatedSource("src-a", videoStream(0), subtitleStream(2, "subrip", "/subs/2.srt"))
	src.DefaultSubtitleStreamIndex = &idx
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{src},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	sub := store.Snapshot().Session.Subtitle
	if sub.Mode != core.SubtitleSelected || !sub.Enabled {
		t.Errorf("subtitle = %+v, want selected and enabled", sub)
	}
	if sub.Track != 2 || sub.Format != "subrip" || sub.URL != "/subs/2.srt" {
		t.Errorf("subtitle = %+v, want track 2 with subrip delivery", sub)
	}
}

func TestAdvanceNoDefaultSubtitleDisables(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-a", videoStream(0), subtitleStream(1, "subrip", "/subs/1.srt"))},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	sub := store.Snapshot().Session.Subtitle
	if sub.Mode != core.SubtitleDisabled || sub.Enabled {
		t.Errorf("subtitle = %+v, want disabled when source declares no default", sub)
	}
	if len(sub.AllTracks) != 1 {
		t.Errorf("AllTracks = %d entries, want candidate set retained", len(sub.AllTracks))
	}
}

func TestChangeSubtitleTrack(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	tracks := []core.MediaStream{
		{Index: 1, Type: core.StreamSubtitle, Codec: "subrip", DeliveryURL: "/subs/1.srt"},
		{Index: 2, Type: core.StreamSubtitle, Codec: "ass", DeliveryURL: "/subs/2.ass"},
	}
	store.Restore(Snapshot{
		Session: &core.PlaybackSession{
			Subtitle: core.SelectSubtitle(core.SubtitleIndex(1), tracks),
		},
	})

	if err := o.ChangeSubtitleTrack(core.SubtitleIndex(2)); err != nil {
		t.Fatalf("ChangeSubtitleTrack() error = %v", err)
	}
	sub := store.Snapshot().Session.Subtitle
	if sub.Track != 2 || sub.Format != "ass" {
		t.Errorf("subtitle = %+v, want track 2", sub)
	}
	if fake.negotiationCount() != 0 {
		t.Error("subtitle change hit the server")
	}

	if err := o.ChangeSubtitleTrack(core.NoSubtitle()); err != nil {
		t.Fatalf("ChangeSubtitleTrack(NoSubtitle) error = %v", err)
	}
	sub = store.Snapshot().Session.Subtitle
	if sub.Mode != core.SubtitleDisabled || sub.Enabled {
		t.Errorf("subtitle = %+v, want disabled", sub)
	}
}

func TestChangeSubtitleWithoutSession(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &fakeServer{})
	if err := o.ChangeSubtitleTrack(core.SubtitleIndex(1)); !stderrors.Is(err, errors.ErrNoStoredSession) {
		t.Errorf("ChangeSubtitleTrack() error = %v, want ErrNoStoredSession", err)
	}
}

func TestToggleSubtitle(t *testing.T) {
	o, store, _ := newTestOrchestrator(t, &fakeServer{})

	tracks := []core.MediaStream{{Index: 1, Type: core.StreamSubtitle, Codec: "subrip"}}
	store.Restore(Snapshot{
		Session: &core.PlaybackSession{
			Subtitle: core.SelectSubtitle(core.SubtitleIndex(1), tracks),
		},
	})

	if err := o.ToggleSubtitle(); err != nil {
		t.Fatalf("ToggleSubtitle() error = %v", err)
	}
	if store.Snapshot().Session.Subtitle.Enabled {
		t.Error("Enabled still true after toggle")
	}
	if err := o.ToggleSubtitle(); err != nil {
		t.Fatal(err)
	}
	if !store.Snapshot().Session.Subtitle.Enabled {
		t.Error("toggle twice did not restore Enabled")
	}
}

func TestToggleSubtitleUnavailableIsNoOp(t *testing.T) {
	o, store, _ := newTestOrchestrator(t, &fakeServer{})

	store.Restore(Snapshot{
		Session: &core.PlaybackSession{
			Subtitle: core.SelectSubtitle(core.UnsetSubtitle(), nil),
		},
	})

	if err := o.ToggleSubtitle(); err != nil {
		t.Fatalf("ToggleSubtitle() error = %v", err)
	}
	sub := store.Snapshot().Session.Subtitle
	if sub.Enabled {
		t.Error("toggle enabled subtitles with none available")
	}
	if sub.WireIndex() != core.WireSubtitleUnavailable {
		t.Errorf("WireIndex() = %d, want unavailable sentinel", sub.WireIndex())
	}
}

func TestStopReportsAndClears(t *testing.T) {
	fake := &fakeServer{}
	o, store, _ := newTestOrchestrator(t, fake)

	store.Restore(Snapshot{
		Session: &core.PlaybackSession{
			Item:          core.Item{ID: "a"},
			MediaSourceID: "src-a",
			PlaySessionID: "ps-old",
		},
		Queue: core.NewQueue([]core.Item{movieItem("a", "A")}, 0),
	})

	if err := o.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	reports := fake.reports()
	if len(reports) != 1 || reports[0].PlaySessionID != "ps-old" {
		t.Errorf("stop reports = %+v, want one for ps-old", reports)
	}
	snap := store.Snapshot()
	if snap.Session != nil || snap.Audio != nil {
		t.Error("sessions not cleared after Stop()")
	}
	if snap.Queue.Len() != 1 {
		t.Error("queue dropped by Stop(), want kept")
	}
}

func TestStopWithoutSession(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &fakeServer{})
	if err := o.Stop(context.Background()); !stderrors.Is(err, errors.ErrNoStoredSession) {
		t.Errorf("Stop() error = %v, want ErrNoStoredSession", err)
	}
}

func TestAttachIntroRejectsStaleGeneration(t *testing.T) {
	store := NewStore()
	gen := store.commitVideo(core.PlaybackSession{ItemName: "first"}, 0)
	store.commitVideo(core.PlaybackSession{ItemName: "second"}, 0)

	intro := &core.IntroInfo{Introduction: &core.SkipSegment{Start: 1, End: 2, Valid: true}}
	if store.AttachIntro(gen, intro) {
		t.Error("AttachIntro accepted a stale generation")
	}
	if store.Snapshot().Session.Intro != nil {
		t.Error("stale intro attached to newer session")
	}
}

func TestAdvanceSubtitlePreferenceOffSuppressesDefault(t *testing.T) {
	idx := 2
	src := negotiatedSource("src-a", videoStream(0), subtitleStream(2, "subrip", "/subs/2.srt"))
	src.DefaultSubtitleStreamIndex = &idx
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{src},
			PlaySessionID: "ps-1",
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)
	o.SetSubtitlePreference("off")

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	sub := store.Snapshot().Session.Subtitle
	if sub.Mode != core.SubtitleDisabled || sub.Enabled {
		t.Errorf("subtitle = %+v, want disabled despite source default", sub)
	}
	if len(sub.AllTracks) != 1 {
		t.Errorf("AllTracks = %d entries, want candidate set retained for later selection", len(sub.AllTracks))
	}
}

func TestAdvanceFetchesIntroForMovies(t *testing.T) {
	fake := &fakeServer{
		playbackInfo: jellyfin.PlaybackInfoResponse{
			MediaSources:  []jellyfin.MediaSourceInfo{negotiatedSource("src-a", videoStream(0))},
			PlaySessionID: "ps-1",
		},
		introSegments: &jellyfin.IntroSegments{
			Introduction: &jellyfin.Segment{Start: 0, End: 42, ShowAt: 0, HideAt: 10, Valid: true},
		},
	}
	o, store, _ := newTestOrchestrator(t, fake)

	store.ResetQueue(core.NewQueue([]core.Item{movieItem("a", "A")}, 0))
	if err := o.Advance(context.Background(), Absolute(0)); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	o.Wait()

	fake.mu.Lock()
	calls := fake.introCalls
	fake.mu.Unlock()
	if calls == 0 {
		t.Fatal("intro endpoint never called for movie")
	}

	snap := store.Snapshot()
	if snap.Session.Intro == nil || snap.Session.Intro.Introduction == nil {
		t.Fatal("intro metadata not attached to movie session")
	}
	if snap.Session.Intro.Introduction.End != 42 {
		t.Errorf("Introduction.End = %v, want 42", snap.Session.Intro.Introduction.End)
	}
}
