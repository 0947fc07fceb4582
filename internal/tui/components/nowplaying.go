package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/playback"
	"github.com/voxfeld/reel/internal/tui/styles"
)

// ticksPerSecond is the server's time unit: 100-nanosecond ticks.
const ticksPerSecond = 10_000_000

// NowPlaying displays the committed playback session
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(snap *playback.Snapshot, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	switch {
	case snap == nil || (snap.Session == nil && snap.Audio == nil):
		content = styles.Muted.Render("Nothing playing")
	case snap.Audio != nil:
		content = n.renderAudio(snap.Audio, width-4)
	default:
		content = n.renderSession(snap.Session, width-4)
	}

	panel := styles.Panel("", focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderSession(sess *core.PlaybackSession, width int) string {
	icon := styles.KindIcon(string(sess.Item.Kind))
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(sess.ItemName)

	episode := ""
	if sess.EpisodeTitle != "" {
		episode = styles.Subtitle.Render(sess.EpisodeTitle)
	}

	// Progress bar from resume offset against total runtime
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	percent := 0.0
	if sess.DurationTicks > 0 {
		percent = float64(sess.StartTicks) / float64(sess.DurationTicks) * 100
	}
	progressBar := styles.ProgressBar(percent, progressWidth)
	current := formatTicks(sess.StartTicks)
	total := formatTicks(sess.DurationTicks)
	progress := fmt.Sprintf("%s %s %s", current, progressBar, total)

	delivery := styles.Muted.Render(fmt.Sprintf("container %s, video #%d, audio #%d",
		sess.Container, sess.VideoTrack, sess.AudioTrack))

	subtitle := styles.SubtitleIcon(sess.Subtitle.Enabled)
	if sess.Subtitle.Enabled {
		subtitle += styles.Dim.Render(fmt.Sprintf(" (track %d)", sess.Subtitle.Track))
	}

	intro := ""
	if sess.Intro != nil && sess.Intro.Introduction != nil && sess.Intro.Introduction.Valid {
		intro = styles.Dim.Render(fmt.Sprintf("intro %s to %s",
			formatSeconds(sess.Intro.Introduction.Start),
			formatSeconds(sess.Intro.Introduction.End)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+episode,
		"",
		progress,
		"",
		delivery,
		subtitle,
		intro,
	)
}

func (n *NowPlaying) renderAudio(audio *core.AudioSession, width int) string {
	icon := styles.KindIcon(string(core.KindAudio))
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(audio.Item.Name)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"",
		styles.Muted.Render("audio stream"),
	)
}

func formatTicks(ticks int64) string {
	d := time.Duration(ticks/ticksPerSecond) * time.Second
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatSeconds(sec float64) string {
	d := time.Duration(sec) * time.Second
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
