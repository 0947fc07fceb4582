package core

import "testing"

func subtitleStreams() []MediaStream {
	return []MediaStream{
		{Index: 0, Type: StreamVideo, Codec: "h264"},
		{Index: 1, Type: StreamAudio, Codec: "aac"},
		{Index: 2, Type: StreamSubtitle, Codec: "subrip", DeliveryURL: "/Videos/abc/2/Subtitles/stream.srt"},
		{Index: 3, Type: StreamSubtitle, Codec: "ass", DeliveryURL: "/Videos/abc/3/Subtitles/stream.ass"},
	}
}

func TestSelectSubtitleNoneAvailable(t *testing.T) {
	streams := []MediaStream{
		{Index: 0, Type: StreamVideo},
		{Index: 1, Type: StreamAudio},
	}

	tests := []struct {
		name string
		req  SubtitleRequest
	}{
		{"concrete index", SubtitleIndex(2)},
		{"no subtitle", NoSubtitle()},
		{"unset", UnsetSubtitle()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := SelectSubtitle(tt.req, streams)
			if sel.Mode != SubtitleUnavailable {
				t.Errorf("Mode = %v, want SubtitleUnavailable", sel.Mode)
			}
			if sel.Enabled {
				t.Error("Enabled = true, want false")
			}
			if sel.WireIndex() != WireSubtitleUnavailable {
				t.Errorf("WireIndex() = %d, want %d", sel.WireIndex(), WireSubtitleUnavailable)
			}
			if len(sel.AllTracks) != 0 {
				t.Errorf("AllTracks has %d entries, want 0", len(sel.AllTracks))
			}
			if sel.URL != "" {
				t.Errorf("URL = %q, want empty", sel.URL)
			}
		})
	}
}

func TestSelectSubtitleExplicitlyDisabled(t *testing.T) {
	sel := SelectSubtitle(NoSubtitle(), subtitleStreams())

	if sel.Mode != SubtitleDisabled {
		t.Errorf("Mode = %v, want SubtitleDisabled", sel.Mode)
	}
	if sel.Enabled {
		t.Error("Enabled = true, want false")
	}
	if sel.WireIndex() != WireSubtitleDisabled {
		t.Errorf("WireIndex() = %d, want %d", sel.WireIndex(), WireSubtitleDisabled)
	}
	// Explicitly disabled still retains the candidate set for later switching.
	if len(sel.AllTracks) != 2 {
		t.Errorf("AllTracks has %d entries, want 2", len(sel.AllTracks))
	}
}

func TestSelectSubtitleMatchingIndex(t *testing.T) {
	sel := SelectSubtitle(SubtitleIndex(2), subtitleStreams())

	if sel.Mode != SubtitleSelected {
		t.Errorf("Mode = %v, want SubtitleSelected", sel.Mode)
	}
	if !sel.Enabled {
		t.Error("Enabled = false, want true")
	}
	if sel.Track != 2 {
		t.Errorf("Track = %d, want 2", sel.Track)
	}
	if sel.Format != "subrip" {
		t.Errorf("Format = %q, want %q", sel.Format, "subrip")
	}
	if sel.URL != "/Videos/abc/2/Subtitles/stream.srt" {
		t.Errorf("URL = %q", sel.URL)
	}
	if sel.WireIndex() != 2 {
		t.Errorf("WireIndex() = %d, want 2", sel.WireIndex())
	}
}

func TestSelectSubtitleIndexZero(t *testing.T) {
	streams := []MediaStream{
		{Index: 0, Type: StreamSubtitle, Codec: "subrip", DeliveryURL: "/sub0.srt"},
	}
	sel := SelectSubtitle(SubtitleIndex(0), streams)

	if !sel.Enabled {
		t.Error("index 0 must resolve like any other index, got Enabled = false")
	}
	if sel.URL != "/sub0.srt" {
		t.Errorf("URL = %q, want %q", sel.URL, "/sub0.srt")
	}
}

func TestSelectSubtitleUnmatchedIndex(t *testing.T) {
	sel := SelectSubtitle(SubtitleIndex(99), subtitleStreams())

	if !sel.Enabled {
		t.Error("Enabled = false, want true for unmatched concrete index")
	}
	if sel.URL != "" || sel.Format != "" {
		t.Errorf("URL = %q, Format = %q; both must be empty when no stream matches", sel.URL, sel.Format)
	}
}

func TestSelectSubtitleIsPure(t *testing.T) {
	streams := subtitleStreams()
	a := SelectSubtitle(SubtitleIndex(3), streams)
	b := SelectSubtitle(SubtitleIndex(3), streams)

	if a.Track != b.Track || a.URL != b.URL || a.Format != b.Format || a.Enabled != b.Enabled {
		t.Error("SelectSubtitle is not idempotent for identical inputs")
	}
}

func TestToggleIsInvolution(t *testing.T) {
	sel := SelectSubtitle(SubtitleIndex(2), subtitleStreams())
	orig := sel.Enabled

	sel.Toggle()
	if sel.Enabled == orig {
		t.Error("first Toggle did not flip Enabled")
	}
	sel.Toggle()
	if sel.Enabled != orig {
		t.Error("double Toggle did not restore Enabled")
	}
}

func TestToggleNoOpWhenUnavailable(t *testing.T) {
	sel := SelectSubtitle(SubtitleIndex(1), nil)
	if sel.Mode != SubtitleUnavailable {
		t.Fatalf("Mode = %v, want SubtitleUnavailable", sel.Mode)
	}

	for i := 0; i < 3; i++ {
		sel.Toggle()
		if sel.Enabled {
			t.Fatal("Toggle enabled subtitles despite none existing")
		}
	}
}

func TestToggleFlipsWhenDisabled(t *testing.T) {
	sel := SelectSubtitle(NoSubtitle(), subtitleStreams())

	sel.Toggle()
	if !sel.Enabled {
		t.Error("Toggle on an explicitly disabled selection must flip Enabled")
	}
}
